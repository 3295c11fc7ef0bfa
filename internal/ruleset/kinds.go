package ruleset

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/dotcommander/pwmeter/internal/strength"
)

// Attribute kinds understood by Build
const (
	KindLengthThreshold = "length_threshold"
	KindLengthPerChar   = "length_per_char"
	KindContainsDigit   = "contains_digit"
	KindContainsUpper   = "contains_upper"
	KindContainsLower   = "contains_lower"
	KindSpecialCount    = "special_count"
	KindPattern         = "pattern"
	KindEntropy         = "entropy"
)

// ruleBuilder turns an attribute definition into a rule.
// A nil rule selects the engine's default length rule.
type ruleBuilder func(def AttributeDef) (strength.Rule, error)

var builders = map[string]ruleBuilder{
	"":                  nil,
	KindLengthThreshold: nil,
	KindLengthPerChar: func(d AttributeDef) (strength.Rule, error) {
		limit, err := boundedParam(d, "cap")
		if err != nil {
			return nil, err
		}
		return strength.LengthPerChar{Cap: limit}, nil
	},
	KindContainsDigit: func(d AttributeDef) (strength.Rule, error) {
		points, err := boundedParam(d, "points")
		if err != nil {
			return nil, err
		}
		return strength.ContainsDigit{Points: points}, nil
	},
	KindContainsUpper: func(d AttributeDef) (strength.Rule, error) {
		points, err := boundedParam(d, "points")
		if err != nil {
			return nil, err
		}
		return strength.ContainsUpper{Points: points}, nil
	},
	KindContainsLower: func(d AttributeDef) (strength.Rule, error) {
		points, err := boundedParam(d, "points")
		if err != nil {
			return nil, err
		}
		return strength.ContainsLower{Points: points}, nil
	},
	KindSpecialCount: func(d AttributeDef) (strength.Rule, error) {
		perChar, err := intParam(d.Params, "per_char", 10)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", d.Name, err)
		}
		if perChar < 0 {
			return nil, fmt.Errorf("attribute %q: %w: per_char must not be negative, got %d", d.Name, ErrInvalidParam, perChar)
		}
		limit, err := boundedParam(d, "cap")
		if err != nil {
			return nil, err
		}
		return strength.SpecialCount{PerChar: perChar, Cap: limit}, nil
	},
	KindPattern: func(d AttributeDef) (strength.Rule, error) {
		expr, _ := d.Params["regexp"].(string)
		if expr == "" {
			return nil, fmt.Errorf("attribute %q: pattern requires params.regexp", d.Name)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", d.Name, err)
		}
		points, err := boundedParam(d, "points")
		if err != nil {
			return nil, err
		}
		return strength.Pattern{Regexp: re, Points: points}, nil
	},
	KindEntropy: func(d AttributeDef) (strength.Rule, error) {
		points, err := boundedParam(d, "points")
		if err != nil {
			return nil, err
		}
		return strength.Entropy{Points: points}, nil
	},
}

// Build converts one attribute definition into a strength.QualityAttribute
func Build(def AttributeDef) (strength.QualityAttribute, error) {
	builder, ok := builders[def.Kind]
	if !ok {
		return strength.QualityAttribute{}, fmt.Errorf("%w: %q (attribute %q)", ErrUnknownKind, def.Kind, def.Name)
	}

	attr := strength.QualityAttribute{
		Name:      def.Name,
		MaxValue:  def.MaxValue,
		Threshold: def.Threshold,
	}
	if builder == nil {
		return attr, nil
	}

	rule, err := builder(def)
	if err != nil {
		return strength.QualityAttribute{}, err
	}
	attr.Rule = rule
	return attr, nil
}

// Kinds lists the supported attribute kinds in sorted order
func Kinds() []string {
	kinds := make([]string, 0, len(builders))
	for k := range builders {
		if k != "" {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// boundedParam reads a points or cap parameter, defaulting to the attribute's max value.
// An explicit value must lie in [0, max_value] so the rule can never leave that range.
func boundedParam(d AttributeDef, key string) (int, error) {
	v, err := intParam(d.Params, key, d.MaxValue)
	if err != nil {
		return 0, fmt.Errorf("attribute %q: %w", d.Name, err)
	}
	if _, set := d.Params[key]; set && (v < 0 || v > d.MaxValue) {
		return 0, fmt.Errorf("attribute %q: %w: %s %d outside [0, %d]", d.Name, ErrInvalidParam, key, v, d.MaxValue)
	}
	return v, nil
}

// intParam reads an integer parameter, accepting the numeric types YAML and viper produce.
// A missing key yields def; any other type, or a float that is not a whole int, is an error.
func intParam(params map[string]any, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, fmt.Errorf("%w: %s %d overflows int", ErrInvalidParam, key, v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%w: %s %d overflows int", ErrInvalidParam, key, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidParam, key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidParam, key, raw)
	}
}
