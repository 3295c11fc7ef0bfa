package cmd

import (
	"fmt"
	"os"

	"github.com/dotcommander/pwmeter/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile    string
	ruleSetPath   string
	thresholdFlag int
	quiet         bool
	verbose       bool
	outputFormat  string
	outputFile    string
	logLevel      string
)

// exitFunc is swapped out in tests
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "pwmeter",
	Short: "Password strength meter - score passwords against weighted quality attributes",
	Long: `pwmeter scores passwords against a list of quality attributes, each worth up to a
maximum number of points. The total is bucketed into weak, medium or strong and compared
against a threshold score that decides whether the password may be used.

The rule set comes from --ruleset, the "rules" block of .pwmeterrc.{json,yaml,yml},
.pwmeter/rules/ in the project root, or the built-in default, in that order.

Passwords are never written to reports or logs.`,
	Version:       output.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default .pwmeterrc.{json,yaml,yml})")
	rootCmd.PersistentFlags().StringVarP(&ruleSetPath, "ruleset", "r", "", "Rule-set file (YAML or JSON)")
	rootCmd.PersistentFlags().IntVarP(&thresholdFlag, "threshold", "t", 0, "Override the rule set's threshold score")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show every attribute for every result")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for json and markdown reports")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	bindFlags()
}

// bindFlags binds the persistent flags that map straight onto config keys.
// --ruleset and --threshold are applied after loading because they replace, rather than merge with, the file.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	viper.BindPFlag("quiet", flags.Lookup("quiet"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("logLevel", flags.Lookup("log-level"))
}
