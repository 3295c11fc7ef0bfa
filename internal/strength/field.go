package strength

import "math"

// Field holds the scoring state of one password input: the attribute list, its cached
// max score, the gate threshold and the latest snapshot.
//
// A Field is not safe for concurrent use. Callers must serialize Update and
// SetAttributes per field.
type Field struct {
	attrs     []QualityAttribute
	maxScore  int
	threshold int
	snapshot  Snapshot
}

// NewField validates attrs and returns a Field scored against the empty password
func NewField(attrs []QualityAttribute, thresholdScore int) (*Field, error) {
	f := &Field{threshold: thresholdScore}
	if err := f.SetAttributes(attrs); err != nil {
		return nil, err
	}
	return f, nil
}

// SetAttributes replaces the attribute list and recomputes the cached max score.
// Current values are reset until the next Update.
func (f *Field) SetAttributes(attrs []QualityAttribute) error {
	if err := ValidateAttributes(attrs); err != nil {
		return err
	}
	f.attrs = make([]QualityAttribute, len(attrs))
	copy(f.attrs, attrs)
	f.maxScore = MaxScore(f.attrs)
	f.snapshot = Snapshot{MaxScore: f.maxScore, Tier: TierNone}
	return nil
}

// Update re-evaluates every attribute against password
func (f *Field) Update(password string) Snapshot {
	f.attrs, f.snapshot = Evaluate(password, f.attrs, f.maxScore)
	return f.snapshot
}

// Attributes returns a copy of the latest evaluated attributes
func (f *Field) Attributes() []QualityAttribute {
	out := make([]QualityAttribute, len(f.attrs))
	copy(out, f.attrs)
	return out
}

func (f *Field) Snapshot() Snapshot {
	return f.snapshot
}

func (f *Field) MaxScore() int {
	return f.maxScore
}

func (f *Field) Threshold() int {
	return f.threshold
}

// CanProceed applies the threshold gate to the latest snapshot
func (f *Field) CanProceed() bool {
	return CanProceed(f.snapshot.TotalScore, f.threshold)
}

// Progress is the meter fill fraction in [0, 1]
func (f *Field) Progress() float64 {
	return Progress(f.snapshot)
}

// Progress bounds a snapshot ratio to [0, 1] for display
func Progress(s Snapshot) float64 {
	if math.IsNaN(s.Ratio) || s.Ratio < 0 {
		return 0
	}
	return math.Min(s.Ratio, 1)
}
