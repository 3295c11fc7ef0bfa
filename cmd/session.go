package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dotcommander/pwmeter/internal/config"
	"github.com/dotcommander/pwmeter/internal/discovery"
	"github.com/dotcommander/pwmeter/internal/logging"
	"github.com/dotcommander/pwmeter/internal/output"
	"github.com/dotcommander/pwmeter/internal/outputters"
	"github.com/dotcommander/pwmeter/internal/project"
	"github.com/dotcommander/pwmeter/internal/ruleset"
	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// session is the loaded config and the rule set every command scores against
type session struct {
	cfg     *config.Config
	project *project.Info
	rules   *ruleset.RuleSet
	start   time.Time
}

// loadSession loads the configuration, applies --ruleset and --threshold and resolves the rule set
func loadSession(cmd *cobra.Command) (*session, error) {
	start := time.Now()

	path := configFile
	if path == "" {
		found, err := projectConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if flagChanged(cmd, "ruleset") {
		cfg.RuleSet = ruleSetPath
		cfg.Rules = nil
	}
	if flagChanged(cmd, "threshold") {
		if thresholdFlag < 0 {
			return nil, fmt.Errorf("--threshold must not be negative, got %d", thresholdFlag)
		}
		t := thresholdFlag
		cfg.Threshold = &t
	}

	if cfg.Root == "." {
		root, err := project.FindProjectRoot(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("error finding project root: %w", err)
		}
		cfg.Root = root
	}
	info := project.Detect(cfg.Root)
	logging.Log.WithFields(logrus.Fields{
		"root":      info.Root,
		"rules":     info.HasRules,
		"wordlists": info.HasWordlists,
	}).Debug("project detected")

	rs, err := resolveRuleSet(cfg)
	if err != nil {
		return nil, err
	}

	logging.Log.WithFields(logrus.Fields{
		"ruleset":    rs.Name,
		"source":     rs.Source,
		"attributes": len(rs.Attributes),
		"max_score":  rs.MaxScore(),
		"threshold":  rs.ThresholdScore,
	}).Debug("rule set loaded")

	return &session{cfg: cfg, project: info, rules: rs, start: start}, nil
}

// projectConfigFile finds the default config file in the project root, which may be
// above the working directory. The path is relative to the working directory.
func projectConfigFile() (string, error) {
	wd, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := project.FindProjectRoot(wd)
	if err != nil {
		return "", fmt.Errorf("error finding project root: %w", err)
	}
	rel, err := filepath.Rel(wd, root)
	if err != nil {
		return "", err
	}
	return config.FindConfigFile(rel), nil
}

// flagChanged reports whether a local or inherited flag was set on the command line
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// resolveRuleSet picks the rule set: explicit file, inline config rules, the first
// discovered rule-set file under the root, then the built-in default.
func resolveRuleSet(cfg *config.Config) (*ruleset.RuleSet, error) {
	rs, err := loadRuleSet(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Threshold != nil {
		logging.Log.Debugf("threshold overridden: %d -> %d", rs.ThresholdScore, *cfg.Threshold)
		rs.ThresholdScore = *cfg.Threshold
	}
	return rs, nil
}

func loadRuleSet(cfg *config.Config) (*ruleset.RuleSet, error) {
	if cfg.RuleSet == "" && cfg.Rules == nil {
		files, err := discovery.NewFileDiscovery(cfg.Root).FindRuleSets()
		if err != nil {
			return nil, fmt.Errorf("error discovering rule sets: %w", err)
		}
		if len(files) == 0 {
			logging.Log.Debug("no rule set configured or discovered, using builtin default")
			return ruleset.Default(), nil
		}
		if len(files) > 1 {
			logging.Log.Warnf("found %d rule sets, using %s", len(files), files[0].RelPath)
		}
		cfg.RuleSet = files[0].Path
	}

	loader, err := ruleset.NewLoader()
	if err != nil {
		return nil, err
	}

	if cfg.Rules != nil {
		source := cfg.ConfigFile
		if source == "" {
			source = "config"
		}
		rs, err := loader.FromDefinition(*cfg.Rules, source)
		if err != nil {
			return nil, fmt.Errorf("invalid rules in %s: %w", source, err)
		}
		return rs, nil
	}

	ft, err := discovery.DetectFileType(cfg.RuleSet)
	if err != nil {
		return nil, err
	}
	if ft != discovery.FileTypeRuleSet {
		return nil, fmt.Errorf("%s is a %s, not a rule set", cfg.RuleSet, ft)
	}
	return loader.Load(cfg.RuleSet)
}

// readPassword takes the password from the single argument, or the first line of in
func readPassword(args []string, in io.Reader) (password, label string, err error) {
	if len(args) > 0 {
		return args[0], "argument", nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("error reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), "stdin", nil
}

// newReport wraps results with the session's rule-set metadata, timed from session start
func (s *session) newReport(results []output.Result) *output.Report {
	return &output.Report{
		RuleSet:        s.rules.Name,
		Source:         s.rules.Source,
		ThresholdScore: s.rules.ThresholdScore,
		MaxScore:       s.rules.MaxScore(),
		Palette:        s.cfg.Palette,
		Results:        results,
		StartTime:      s.start,
	}
}

// emit formats the report in the configured format
func (s *session) emit(w io.Writer, report *output.Report) error {
	if err := outputters.NewOutputter(s.cfg, w).Format(report, s.cfg.Format); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}

func (s *session) newField() (*strength.Field, error) {
	field, err := s.rules.NewField()
	if err != nil {
		return nil, fmt.Errorf("error building rule set %q: %w", s.rules.Name, err)
	}
	return field, nil
}
