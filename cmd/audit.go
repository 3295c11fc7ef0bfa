package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotcommander/pwmeter/internal/discovery"
	"github.com/dotcommander/pwmeter/internal/logging"
	"github.com/dotcommander/pwmeter/internal/output"
	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/spf13/cobra"
)

// maxLineBytes bounds a single wordlist line
const maxLineBytes = 1024 * 1024

var auditFailOnBlocked bool

var auditCmd = &cobra.Command{
	Use:   "audit [files...]",
	Short: "Score every line of one or more wordlists",
	Long: `Score every non-empty line of the given files and print a tier distribution.

Arguments may be files or doublestar globs ("lists/**/*.txt"). With no arguments the
wordlists under .pwmeter/wordlists/ in the project root are audited.

Results are labelled file:line; the passwords themselves are never printed.

FLAGS:
  --fail-on-blocked  Exit 1 if any line is below the threshold score

EXAMPLES:
  pwmeter audit leaked.txt
  pwmeter audit 'lists/**/*.txt' --format markdown -o audit.md`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAudit(cmd, args, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditFailOnBlocked, "fail-on-blocked", false, "Exit 1 if any line is below the threshold score")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string, w io.Writer) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 && !s.project.HasWordlists {
		return fmt.Errorf("no files to audit: pass files or globs, or add wordlists to %s",
			filepath.Join(s.project.Root, ".pwmeter", "wordlists"))
	}

	paths, err := auditInputs(s.cfg.Root, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files to audit: pass files or globs, or add wordlists to .pwmeter/wordlists/")
	}

	field, err := s.newField()
	if err != nil {
		return err
	}

	var results []output.Result
	for _, path := range paths {
		fileResults, err := auditFile(field, path)
		if err != nil {
			return err
		}
		logging.Log.Debugf("audited %s: %d lines", path, len(fileResults))
		results = append(results, fileResults...)
	}

	report := s.newReport(results)
	if err := s.emit(w, report); err != nil {
		return err
	}

	if auditFailOnBlocked {
		if summary := report.Summarize(); summary.Failed > 0 {
			return fmt.Errorf("%d of %d lines are below the threshold score %d", summary.Failed, summary.Total, report.ThresholdScore)
		}
	}
	return nil
}

// auditInputs expands the arguments, or discovers wordlists under root when there are none
func auditInputs(root string, args []string) ([]string, error) {
	if len(args) > 0 {
		return discovery.ExpandInputs(args)
	}

	files, err := discovery.NewFileDiscovery(root).FindWordlists()
	if err != nil {
		return nil, fmt.Errorf("error discovering wordlists: %w", err)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, nil
}

// auditFile scores each non-empty line of path with field
func auditFile(field *strength.Field, path string) ([]output.Result, error) {
	absPath, err := discovery.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	var results []output.Result
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		field.Update(line)
		results = append(results, output.NewResult(fmt.Sprintf("%s:%d", path, lineNo), field))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return results, nil
}
