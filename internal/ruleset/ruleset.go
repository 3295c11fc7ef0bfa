// Package ruleset loads password rule sets from YAML or JSON documents and builds the
// strength attributes they describe.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dotcommander/pwmeter/internal/cue"
	"github.com/dotcommander/pwmeter/internal/strength"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidRuleSet wraps schema violations in a rule-set document
	ErrInvalidRuleSet = errors.New("invalid rule set")
	// ErrUnknownKind is returned for an attribute kind with no built-in rule
	ErrUnknownKind = errors.New("unknown attribute kind")
	// ErrInvalidParam is returned for an attribute param of the wrong type or out of range
	ErrInvalidParam = errors.New("invalid attribute param")
)

// Definition is the on-disk form of a rule set
type Definition struct {
	Name           string         `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	ThresholdScore int            `yaml:"threshold_score" json:"threshold_score" mapstructure:"threshold_score"`
	Attributes     []AttributeDef `yaml:"attributes" json:"attributes" mapstructure:"attributes"`
}

// AttributeDef is the on-disk form of one quality attribute
type AttributeDef struct {
	Name      string         `yaml:"name" json:"name" mapstructure:"name"`
	Kind      string         `yaml:"kind,omitempty" json:"kind,omitempty" mapstructure:"kind"`
	MaxValue  int            `yaml:"max_value" json:"max_value" mapstructure:"max_value"`
	Threshold int            `yaml:"threshold" json:"threshold" mapstructure:"threshold"`
	Params    map[string]any `yaml:"params,omitempty" json:"params,omitempty" mapstructure:"params"`
}

// RuleSet is a built rule set ready for evaluation
type RuleSet struct {
	Name           string
	Description    string
	Source         string
	ThresholdScore int
	Attributes     []strength.QualityAttribute
}

// MaxScore sums the attribute max values
func (rs *RuleSet) MaxScore() int {
	return strength.MaxScore(rs.Attributes)
}

// NewField returns a strength.Field scored against this rule set
func (rs *RuleSet) NewField() (*strength.Field, error) {
	return strength.NewField(rs.Attributes, rs.ThresholdScore)
}

// Loader validates rule-set documents against the embedded CUE schema and builds them
type Loader struct {
	validator *cue.Validator
}

// NewLoader creates a Loader with the embedded schemas loaded
func NewLoader() (*Loader, error) {
	v := cue.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return nil, fmt.Errorf("loading rule-set schema: %w", err)
	}
	return &Loader{validator: v}, nil
}

// Load reads and parses a rule-set file. JSON files are read through the YAML decoder.
func (l *Loader) Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}
	rs, err := l.parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse validates and builds a rule set from YAML or JSON bytes
func (l *Loader) Parse(data []byte) (*RuleSet, error) {
	return l.parse(data, "")
}

func (l *Loader) parse(data []byte, source string) (*RuleSet, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing rule set: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := l.validateRaw(raw); err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("error decoding rule set: %w", err)
	}

	rs, err := BuildRuleSet(def)
	if err != nil {
		return nil, err
	}
	rs.Source = source
	return rs, nil
}

// FromDefinition validates an in-memory definition, e.g. one embedded in the config file
func (l *Loader) FromDefinition(def Definition, source string) (*RuleSet, error) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("error encoding rule set: %w", err)
	}
	return l.parse(data, source)
}

func (l *Loader) validateRaw(raw map[string]any) error {
	issues, err := l.validator.ValidateRuleSet(raw)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, issue.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalidRuleSet, strings.Join(msgs, "; "))
}

// BuildRuleSet builds every attribute in def. It does not run schema validation but
// still rejects negative values through strength.ValidateAttributes.
func BuildRuleSet(def Definition) (*RuleSet, error) {
	attrs := make([]strength.QualityAttribute, 0, len(def.Attributes))
	for _, ad := range def.Attributes {
		attr, err := Build(ad)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	if err := strength.ValidateAttributes(attrs); err != nil {
		return nil, err
	}
	if def.ThresholdScore < 0 {
		return nil, fmt.Errorf("%w: negative threshold score %d", ErrInvalidRuleSet, def.ThresholdScore)
	}
	return &RuleSet{
		Name:           def.Name,
		Description:    def.Description,
		ThresholdScore: def.ThresholdScore,
		Attributes:     attrs,
	}, nil
}
