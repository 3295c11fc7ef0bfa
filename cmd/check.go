package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errBlocked means the password scored below the threshold
var errBlocked = errors.New("password is below the threshold score")

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Exit 1 if a password does not reach the threshold score",
	Long: `Check a password against the threshold score without printing a report.

Prints one line with the tier and score (nothing with --quiet) and exits 0 when the
password may be used, 1 when it is blocked. Intended for scripts and git hooks.

EXAMPLES:
  printf '%s' "$PASSWORD" | pwmeter check -q && echo ok
  pwmeter check -t 70 < secret.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(cmd, args, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			if !errors.Is(err, errBlocked) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string, in io.Reader, w io.Writer) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	password, _, err := readPassword(args, in)
	if err != nil {
		return err
	}

	field, err := s.newField()
	if err != nil {
		return err
	}
	snap := field.Update(password)

	ok := field.CanProceed()
	if !s.cfg.Quiet {
		verdict := "blocked"
		if ok {
			verdict = "ok"
		}
		fmt.Fprintf(w, "%s %s %d/%d (threshold %d)\n",
			verdict, snap.Tier, snap.TotalScore, snap.MaxScore, field.Threshold())
	}

	if !ok {
		return errBlocked
	}
	return nil
}
