package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/pwmeter/internal/strength"
)

// meterWidth is the number of cells in the strength bar
const meterWidth = 20

// cssColors resolves the palette names used in configs to hex values lipgloss understands
var cssColors = map[string]string{
	"red":        "#FF0000",
	"orange":     "#FFA500",
	"yellow":     "#FFFF00",
	"green":      "#008000",
	"lightgreen": "#90EE90",
	"gray":       "#808080",
	"grey":       "#808080",
	"blue":       "#0000FF",
}

// ConsoleFormatter formats output for console display.
// Styling follows lipgloss's terminal detection, so piped output and NO_COLOR stay plain.
type ConsoleFormatter struct {
	w       io.Writer
	quiet   bool
	verbose bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(w io.Writer, quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		w:       w,
		quiet:   quiet,
		verbose: verbose,
	}
}

// Format formats the report for console output
func (f *ConsoleFormatter) Format(report *Report) error {
	if f.quiet {
		return nil
	}

	showAttributes := f.verbose || len(report.Results) == 1
	for _, res := range report.Results {
		f.printResult(report, res, showAttributes)
	}

	if len(report.Results) > 1 {
		f.printSummary(report)
	}
	return nil
}

func (f *ConsoleFormatter) printResult(report *Report, res Result, showAttributes bool) {
	snap := res.Snapshot
	tierStyle := f.style(report.Palette.Color(snap.Tier))

	gate := "✗ blocked"
	gateStyle := f.style("#FF0000")
	if res.CanProceed {
		gate = "✓ may proceed"
		gateStyle = f.style("#008000")
	}

	fmt.Fprintf(f.w, "%s  %s %s  %d/%d  %s\n",
		res.Label,
		tierStyle.Render(renderMeter(strength.Progress(snap))),
		tierStyle.Bold(true).Render(fmt.Sprintf("%-6s", snap.Tier)),
		snap.TotalScore, snap.MaxScore,
		gateStyle.Render(gate))

	if !showAttributes {
		return
	}

	nameWidth := 0
	for _, a := range res.Attributes {
		if w := lipgloss.Width(a.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, a := range res.Attributes {
		mark := f.style("#808080").Render("○")
		if a.Satisfied {
			mark = f.style("#008000").Render("✓")
		}
		fmt.Fprintf(f.w, "    %s %s  %d/%d\n", mark, padRight(a.Name, nameWidth), a.CurrentValue, a.MaxValue)
	}
}

func (f *ConsoleFormatter) printSummary(report *Report) {
	s := report.Summarize()

	fmt.Fprintln(f.w)
	parts := make([]string, 0, len(Tiers))
	for _, tier := range Tiers {
		label := fmt.Sprintf("%s %d", tier, s.TierCounts[tier])
		parts = append(parts, f.style(report.Palette.Color(tier)).Render(label))
	}
	fmt.Fprintln(f.w, strings.Join(parts, "  "))

	duration := ""
	if !report.StartTime.IsZero() {
		duration = fmt.Sprintf(" (%v)", time.Since(report.StartTime).Round(time.Millisecond))
	}
	fmt.Fprintf(f.w, "%d/%d passed threshold %d%s\n", s.Passed, s.Total, report.ThresholdScore, duration)
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(resolveColor(color))
}

// resolveColor maps CSS names to hex; anything else (hex, ANSI numbers) passes through
func resolveColor(name string) lipgloss.Color {
	if hex, ok := cssColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(name)
}

// renderMeter draws a fixed-width bar filled to progress
func renderMeter(progress float64) string {
	filled := int(progress*meterWidth + 0.5)
	if filled > meterWidth {
		filled = meterWidth
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled) + "]"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
