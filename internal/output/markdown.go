package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	w          io.Writer
	verbose    bool
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		w:          w,
		verbose:    verbose,
		outputFile: outputFile,
	}
}

// Format formats the report as Markdown
func (f *MarkdownFormatter) Format(report *Report) error {
	var b strings.Builder
	s := report.Summarize()

	b.WriteString("# Password Strength Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Rule set:** %s", report.RuleSet))
	if report.Source != "" {
		b.WriteString(fmt.Sprintf(" (`%s`)", report.Source))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("**Threshold:** %d of %d\n\n", report.ThresholdScore, report.MaxScore))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Scored | %d |\n", s.Total))
	b.WriteString(fmt.Sprintf("| Passed | %d |\n", s.Passed))
	b.WriteString(fmt.Sprintf("| Blocked | %d |\n", s.Failed))
	for _, tier := range Tiers {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", titleCase(string(tier)), s.TierCounts[tier]))
	}
	b.WriteString("\n")

	b.WriteString("## Results\n\n")
	if s.Total == 0 {
		b.WriteString("*No passwords scored.*\n")
	} else {
		b.WriteString("| Input | Score | Tier | Gate |\n")
		b.WriteString("|-------|-------|------|------|\n")
		for _, res := range report.Results {
			b.WriteString(fmt.Sprintf("| %s | %d/%d | %s | %s |\n",
				escapeCell(res.Label), res.Snapshot.TotalScore, res.Snapshot.MaxScore,
				res.Snapshot.Tier, gateEmoji(res.CanProceed)))
		}
		b.WriteString("\n")

		if f.verbose || s.Total == 1 {
			for _, res := range report.Results {
				b.WriteString(fmt.Sprintf("### %s\n\n", res.Label))
				for _, a := range res.Attributes {
					box := " "
					if a.Satisfied {
						box = "x"
					}
					b.WriteString(fmt.Sprintf("- [%s] %s (%d/%d, threshold %d)\n",
						box, a.Name, a.CurrentValue, a.MaxValue, a.Threshold))
				}
				b.WriteString("\n")
			}
		}
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

func gateEmoji(ok bool) string {
	if ok {
		return "✓ pass"
	}
	return "✗ blocked"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
