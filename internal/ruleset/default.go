package ruleset

// DefaultDefinition is used when no rule set is configured: eight characters, a digit and
// special characters, with 40 of 80 points needed to pass.
func DefaultDefinition() Definition {
	return Definition{
		Name:           "default",
		Description:    "length, digit and special-character checks",
		ThresholdScore: 40,
		Attributes: []AttributeDef{
			{Name: "At least 8 chars", Kind: KindLengthThreshold, MaxValue: 20, Threshold: 8},
			{Name: "Contains number", Kind: KindContainsDigit, MaxValue: 10, Threshold: 10},
			{Name: "Contains special char", Kind: KindSpecialCount, MaxValue: 50, Threshold: 10,
				Params: map[string]any{"per_char": 10}},
		},
	}
}

// Default builds DefaultDefinition
func Default() *RuleSet {
	rs, err := BuildRuleSet(DefaultDefinition())
	if err != nil {
		panic(err) // static definition
	}
	rs.Source = "builtin"
	return rs
}
