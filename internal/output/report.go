package output

import (
	"time"

	"github.com/dotcommander/pwmeter/internal/strength"
)

// Version is reported in JSON and Markdown headers
var Version = "0.1.0"

// Result is the evaluation of one password. The password itself is never stored;
// Label identifies where it came from (an argument, stdin, or file:line).
type Result struct {
	Label      string
	Attributes []strength.QualityAttribute
	Snapshot   strength.Snapshot
	CanProceed bool
}

// Report is a batch of results scored against one rule set
type Report struct {
	RuleSet        string
	Source         string
	ThresholdScore int
	MaxScore       int
	Palette        strength.Palette
	StartTime      time.Time
	Results        []Result
}

// Summary aggregates a report for the summary sections
type Summary struct {
	Total      int
	Passed     int
	Failed     int
	TierCounts map[strength.Tier]int
}

// Tiers lists tiers from strongest to weakest, the order used in summaries
var Tiers = []strength.Tier{strength.TierStrong, strength.TierMedium, strength.TierWeak, strength.TierNone}

// NewResult evaluates a field's current state into a Result
func NewResult(label string, field *strength.Field) Result {
	return Result{
		Label:      label,
		Attributes: field.Attributes(),
		Snapshot:   field.Snapshot(),
		CanProceed: field.CanProceed(),
	}
}

// Summarize counts gate passes and tiers across all results
func (r *Report) Summarize() Summary {
	s := Summary{
		Total:      len(r.Results),
		TierCounts: make(map[strength.Tier]int, len(Tiers)),
	}
	for _, res := range r.Results {
		if res.CanProceed {
			s.Passed++
		} else {
			s.Failed++
		}
		s.TierCounts[res.Snapshot.Tier]++
	}
	return s
}
