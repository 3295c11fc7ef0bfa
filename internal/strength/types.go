package strength

import (
	"errors"
	"fmt"
)

// ErrInvalidAttribute is returned when an attribute carries a negative max value or threshold.
var ErrInvalidAttribute = errors.New("invalid quality attribute")

// Tier is the qualitative strength bucket derived from the score ratio
type Tier string

const (
	TierNone   Tier = "none"
	TierWeak   Tier = "weak"
	TierMedium Tier = "medium"
	TierStrong Tier = "strong"
)

// Rule scores a password. Implementations should return a value in [0, max] for the
// attribute they are attached to; the engine does not re-clamp.
type Rule interface {
	Score(password string) int
}

// RuleFunc adapts an ordinary function to the Rule interface
type RuleFunc func(password string) int

// Score calls f(password)
func (f RuleFunc) Score(password string) int {
	return f(password)
}

// QualityAttribute is one scoring rule contributing a bounded point value.
//
// Name, MaxValue, Threshold and Rule are supplied by the caller. CurrentValue and
// Satisfied are the result of the most recent evaluation. A nil Rule selects the
// default length rule: MaxValue when the password has at least Threshold characters,
// otherwise 0.
type QualityAttribute struct {
	Name         string `json:"name"`
	MaxValue     int    `json:"max_value"`
	Threshold    int    `json:"threshold"`
	Rule         Rule   `json:"-"`
	CurrentValue int    `json:"current_value"`
	Satisfied    bool   `json:"satisfied"`
}

// Validate rejects negative MaxValue or Threshold
func (a QualityAttribute) Validate() error {
	if a.MaxValue < 0 {
		return fmt.Errorf("%w: %q has negative max value %d", ErrInvalidAttribute, a.Name, a.MaxValue)
	}
	if a.Threshold < 0 {
		return fmt.Errorf("%w: %q has negative threshold %d", ErrInvalidAttribute, a.Name, a.Threshold)
	}
	return nil
}

// ValidateAttributes validates every attribute and returns the first failure
func ValidateAttributes(attrs []QualityAttribute) error {
	for _, a := range attrs {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot is the aggregate result for one password value
type Snapshot struct {
	TotalScore int     `json:"total_score"`
	MaxScore   int     `json:"max_score"`
	Ratio      float64 `json:"ratio"`
	Tier       Tier    `json:"tier"`
}

// TierFromRatio returns the strength tier for a score ratio.
// Boundaries are strict: a ratio of exactly 0.8 is medium, not strong.
func TierFromRatio(ratio float64) Tier {
	switch {
	case ratio > 0.8:
		return TierStrong
	case ratio > 0.5:
		return TierMedium
	case ratio > 0.2:
		return TierWeak
	default:
		return TierNone
	}
}
