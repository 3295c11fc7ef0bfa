package output

import (
	"time"

	"github.com/dotcommander/pwmeter/internal/strength"
)

func sampleResult(label string, values [3]int, proceed bool) Result {
	defs := []strength.QualityAttribute{
		{Name: "At least 8 chars", MaxValue: 20, Threshold: 8},
		{Name: "Contains number", MaxValue: 10, Threshold: 10},
		{Name: "Contains special char", MaxValue: 50, Threshold: 10},
	}
	total := 0
	for i := range defs {
		defs[i].CurrentValue = values[i]
		defs[i].Satisfied = values[i] >= defs[i].Threshold
		total += values[i]
	}
	ratio := float64(total) / 80
	return Result{
		Label:      label,
		Attributes: defs,
		Snapshot: strength.Snapshot{
			TotalScore: total,
			MaxScore:   80,
			Ratio:      ratio,
			Tier:       strength.TierFromRatio(ratio),
		},
		CanProceed: proceed,
	}
}

func sampleReport(results ...Result) *Report {
	return &Report{
		RuleSet:        "default",
		Source:         "builtin",
		ThresholdScore: 40,
		MaxScore:       80,
		Palette:        strength.DefaultPalette,
		StartTime:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Results:        results,
	}
}
