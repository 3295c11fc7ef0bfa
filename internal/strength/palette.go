package strength

// Palette maps tiers to display colours. Any CSS colour name or hex value is accepted;
// the console formatter resolves it to a terminal colour.
type Palette struct {
	Weak    string `mapstructure:"weak" json:"weak"`
	Medium  string `mapstructure:"medium" json:"medium"`
	Strong  string `mapstructure:"strong" json:"strong"`
	Neutral string `mapstructure:"neutral" json:"neutral"`
}

// DefaultPalette is red / orange / light green over a grey neutral
var DefaultPalette = Palette{
	Weak:    "red",
	Medium:  "orange",
	Strong:  "lightgreen",
	Neutral: "#808080",
}

// Color returns the colour for tier, falling back to DefaultPalette for empty entries
func (p Palette) Color(tier Tier) string {
	switch tier {
	case TierStrong:
		return orDefault(p.Strong, DefaultPalette.Strong)
	case TierMedium:
		return orDefault(p.Medium, DefaultPalette.Medium)
	case TierWeak:
		return orDefault(p.Weak, DefaultPalette.Weak)
	default:
		return orDefault(p.Neutral, DefaultPalette.Neutral)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
