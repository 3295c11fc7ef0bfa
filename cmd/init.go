package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dotcommander/pwmeter/internal/config"
	"github.com/dotcommander/pwmeter/internal/ruleset"
	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/spf13/cobra"
)

var (
	initForce     bool
	initWithRules bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter .pwmeterrc.json",
	Long: `Write a starter configuration file (default .pwmeterrc.json in the current directory).

With --with-rules the built-in rule set is embedded under "rules" so it can be edited
in place. An existing file is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInit(args, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVar(&initWithRules, "with-rules", false, "Embed the built-in rule set")
	rootCmd.AddCommand(initCmd)
}

func runInit(args []string, w io.Writer) error {
	path := config.DefaultConfigPaths[0]
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := starterConfig(initWithRules)
	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func starterConfig(withRules bool) *config.Config {
	cfg := &config.Config{
		Root:     ".",
		Format:   "console",
		LogLevel: "warn",
		Palette:  strength.DefaultPalette,
	}
	if withRules {
		def := ruleset.DefaultDefinition()
		cfg.Rules = &def
	}
	return cfg
}
