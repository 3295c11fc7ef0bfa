package strength

import "unicode/utf8"

// MaxScore sums MaxValue over attrs. Callers compute it once per attribute list and
// pass it to Evaluate, rather than re-summing on every keystroke.
func MaxScore(attrs []QualityAttribute) int {
	var total int
	for _, a := range attrs {
		total += a.MaxValue
	}
	return total
}

// Evaluate scores password against every attribute and aggregates the result.
//
// The returned slice is a fresh copy with CurrentValue and Satisfied refreshed; attrs is
// left untouched. Values returned by custom rules are taken as-is. A rule that panics
// propagates to the caller.
func Evaluate(password string, attrs []QualityAttribute, maxScore int) ([]QualityAttribute, Snapshot) {
	updated := make([]QualityAttribute, len(attrs))
	var total int

	for i, attr := range attrs {
		attr.CurrentValue = scoreAttribute(attr, password)
		// Compared against Threshold, not MaxValue
		attr.Satisfied = attr.CurrentValue >= attr.Threshold
		total += attr.CurrentValue
		updated[i] = attr
	}

	var ratio float64
	if maxScore > 0 {
		ratio = float64(total) / float64(maxScore)
	}

	return updated, Snapshot{
		TotalScore: total,
		MaxScore:   maxScore,
		Ratio:      ratio,
		Tier:       TierFromRatio(ratio),
	}
}

// CanProceed reports whether totalScore reaches thresholdScore
func CanProceed(totalScore, thresholdScore int) bool {
	return totalScore >= thresholdScore
}

func scoreAttribute(attr QualityAttribute, password string) int {
	if attr.Rule != nil {
		return attr.Rule.Score(password)
	}
	return defaultScore(attr, password)
}

// defaultScore is the length rule used when an attribute has no Rule
func defaultScore(attr QualityAttribute, password string) int {
	if utf8.RuneCountInString(password) >= attr.Threshold {
		return attr.MaxValue
	}
	return 0
}
