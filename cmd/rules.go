package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotcommander/pwmeter/internal/discovery"
	"github.com/dotcommander/pwmeter/internal/project"
	"github.com/dotcommander/pwmeter/internal/ruleset"
	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/spf13/cobra"
)

var rulesListKinds bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active rule set",
	Long: `Show the rule set passwords are scored against: where it was loaded from, the
threshold score, the maximum score and each quality attribute with its max value,
satisfaction threshold and rule.

Use --kinds to list the rule kinds a rule-set file may use.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRules(cmd, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesListKinds, "kinds", false, "List the available rule kinds")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, w io.Writer) error {
	if rulesListKinds {
		for _, k := range ruleset.Kinds() {
			fmt.Fprintln(w, k)
		}
		return nil
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	printRuleSet(w, s.rules)
	if s.cfg.Verbose {
		files, err := discovery.NewFileDiscovery(s.project.Root).DiscoverFiles()
		if err != nil {
			return fmt.Errorf("error discovering project files: %w", err)
		}
		printProject(w, s.project, files)
	}
	return nil
}

func printRuleSet(w io.Writer, rs *ruleset.RuleSet) {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	name := rs.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%s %s\n", header.Render("Rule set:"), name)
	if rs.Source != "" {
		fmt.Fprintf(w, "%s %s\n", dim.Render("Source:"), rs.Source)
	}
	if rs.Description != "" {
		fmt.Fprintln(w, dim.Render(rs.Description))
	}
	fmt.Fprintf(w, "Threshold %d of %d\n\n", rs.ThresholdScore, rs.MaxScore())

	if len(rs.Attributes) == 0 {
		fmt.Fprintln(w, dim.Render("no attributes; every password scores 0"))
		return
	}

	nameWidth := len("ATTRIBUTE")
	for _, a := range rs.Attributes {
		if n := lipgloss.Width(a.Name); n > nameWidth {
			nameWidth = n
		}
	}

	fmt.Fprintln(w, header.Render(fmt.Sprintf("%-*s  %5s  %9s  %s", nameWidth, "ATTRIBUTE", "MAX", "THRESHOLD", "RULE")))
	for _, a := range rs.Attributes {
		fmt.Fprintf(w, "%s  %5d  %9d  %s\n",
			a.Name+strings.Repeat(" ", nameWidth-lipgloss.Width(a.Name)), a.MaxValue, a.Threshold, ruleName(a))
	}
}

// ruleName describes the rule behind an attribute
func ruleName(a strength.QualityAttribute) string {
	if a.Rule == nil {
		return "length >= threshold"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", a.Rule), "strength.")
}

func printProject(w io.Writer, info *project.Info, files []discovery.File) {
	fmt.Fprintf(w, "\nProject root: %s\n", info.Root)
	fmt.Fprintf(w, "  config file: %s\n", orNone(info.ConfigFile))
	fmt.Fprintf(w, "  .pwmeter/rules: %t\n", info.HasRules)
	fmt.Fprintf(w, "  .pwmeter/wordlists: %t\n", info.HasWordlists)
	for _, f := range files {
		fmt.Fprintf(w, "  %-8s %s (%d bytes)\n", f.Type, f.RelPath, f.Size)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
