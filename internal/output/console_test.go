package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleFormatter_Format(t *testing.T) {
	medium := sampleResult("argument", [3]int{20, 10, 20}, true)
	weak := sampleResult("words.txt:2", [3]int{20, 0, 0}, false)

	tests := []struct {
		name            string
		report          *Report
		quiet           bool
		verbose         bool
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:            "quiet mode - no output",
			report:          sampleReport(medium),
			quiet:           true,
			wantNotContains: []string{"argument", "medium"},
		},
		{
			name:   "single result shows attributes",
			report: sampleReport(medium),
			wantContains: []string{
				"argument", "medium", "50/80", "✓ may proceed",
				"At least 8 chars", "20/20", "Contains special char", "20/50",
			},
			wantNotContains: []string{"passed threshold"},
		},
		{
			name:   "multiple results show summary without attributes",
			report: sampleReport(medium, weak),
			wantContains: []string{
				"argument", "words.txt:2", "✗ blocked", "weak",
				"strong 0", "medium 1", "weak 1", "none 0",
				"1/2 passed threshold 40",
			},
			wantNotContains: []string{"Contains number"},
		},
		{
			name:         "verbose shows attributes for every result",
			report:       sampleReport(medium, weak),
			verbose:      true,
			wantContains: []string{"Contains number", "0/10"},
		},
		{
			name:            "empty report",
			report:          sampleReport(),
			wantNotContains: []string{"passed threshold"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewConsoleFormatter(&buf, tt.quiet, tt.verbose)

			if err := f.Format(tt.report); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(out, notWant) {
					t.Errorf("output unexpectedly contains %q\n%s", notWant, out)
				}
			}
		})
	}
}

func TestRenderMeter(t *testing.T) {
	tests := []struct {
		progress   float64
		wantFilled int
	}{
		{0, 0},
		{0.5, 10},
		{0.625, 13},
		{1, 20},
		{3, 20},
		{-1, 0},
	}

	for _, tt := range tests {
		got := renderMeter(tt.progress)
		if n := strings.Count(got, "█"); n != tt.wantFilled {
			t.Errorf("renderMeter(%v) filled = %d, want %d", tt.progress, n, tt.wantFilled)
		}
		if n := strings.Count(got, "█") + strings.Count(got, "░"); n != meterWidth {
			t.Errorf("renderMeter(%v) width = %d, want %d", tt.progress, n, meterWidth)
		}
	}
}

func TestResolveColor(t *testing.T) {
	tests := map[string]string{
		"red":        "#FF0000",
		"LightGreen": "#90EE90",
		"#123456":    "#123456",
		"9":          "9",
	}
	for in, want := range tests {
		if got := string(resolveColor(in)); got != want {
			t.Errorf("resolveColor(%q) = %q, want %q", in, got, want)
		}
	}
}
