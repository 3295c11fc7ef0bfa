package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/google/uuid"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w          io.Writer
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. A non-empty outputFile takes precedence over w.
func NewJSONFormatter(w io.Writer, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		w:          w,
		indent:     indent,
		outputFile: outputFile,
	}
}

// Format formats the report as JSON
func (f *JSONFormatter) Format(report *Report) error {
	s := report.Summarize()
	tiers := make(map[string]int, len(Tiers))
	for _, tier := range Tiers {
		tiers[string(tier)] = s.TierCounts[tier]
	}

	doc := JSONReport{
		Header: JSONHeader{
			Tool:      "pwmeter",
			Version:   Version,
			RunID:     uuid.NewString(),
			Timestamp: time.Now().Format(time.RFC3339),
		},
		RuleSet: JSONRuleSet{
			Name:           report.RuleSet,
			Source:         report.Source,
			ThresholdScore: report.ThresholdScore,
			MaxScore:       report.MaxScore,
		},
		Summary: JSONSummary{
			Total:  s.Total,
			Passed: s.Passed,
			Failed: s.Failed,
			Tiers:  tiers,
		},
		Results: make([]JSONResult, len(report.Results)),
	}

	for i, res := range report.Results {
		doc.Results[i] = JSONResult{
			Label:      res.Label,
			Snapshot:   res.Snapshot,
			Color:      report.Palette.Color(res.Snapshot.Tier),
			Progress:   strength.Progress(res.Snapshot),
			CanProceed: res.CanProceed,
			Attributes: res.Attributes,
		}
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", f.outputFile, err)
		}
		return nil
	}

	_, err = fmt.Fprintln(f.w, string(data))
	return err
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	RuleSet JSONRuleSet  `json:"ruleset"`
	Summary JSONSummary  `json:"summary"`
	Results []JSONResult `json:"results"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
}

// JSONRuleSet describes the rule set the report was scored against
type JSONRuleSet struct {
	Name           string `json:"name"`
	Source         string `json:"source,omitempty"`
	ThresholdScore int    `json:"threshold_score"`
	MaxScore       int    `json:"max_score"`
}

// JSONSummary contains summary statistics
type JSONSummary struct {
	Total  int            `json:"total"`
	Passed int            `json:"passed"`
	Failed int            `json:"failed"`
	Tiers  map[string]int `json:"tiers"`
}

// JSONResult represents a single scored password
type JSONResult struct {
	Label string `json:"label"`
	strength.Snapshot
	Color      string                      `json:"color"`
	Progress   float64                     `json:"progress"`
	CanProceed bool                        `json:"can_proceed"`
	Attributes []strength.QualityAttribute `json:"attributes"`
}
