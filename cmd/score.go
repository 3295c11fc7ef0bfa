package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dotcommander/pwmeter/internal/logging"
	"github.com/dotcommander/pwmeter/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [password]",
	Short: "Score a password and print the strength report",
	Long: `Score a single password against the active rule set and print its tier, total score,
gate result and per-attribute breakdown.

The password is taken from the argument, or from the first line of stdin when no argument
is given. Prefer stdin: arguments end up in shell history.

EXAMPLES:
  printf '%s' "$PASSWORD" | pwmeter score
  pwmeter score --format json < secret.txt
  pwmeter score -r team.yaml -t 60 'correct horse battery staple'`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(cmd, args, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string, in io.Reader, w io.Writer) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	password, label, err := readPassword(args, in)
	if err != nil {
		return err
	}

	field, err := s.newField()
	if err != nil {
		return err
	}
	snap := field.Update(password)

	logging.Log.WithFields(logrus.Fields{
		"input": label,
		"total": snap.TotalScore,
		"tier":  snap.Tier,
	}).Debug("password scored")

	return s.emit(w, s.newReport([]output.Result{output.NewResult(label, field)}))
}
