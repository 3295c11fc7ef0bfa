package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotcommander/pwmeter/internal/ruleset"
	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/spf13/viper"
)

// DefaultConfigPaths are searched in order when no --config is given
var DefaultConfigPaths = []string{".pwmeterrc.json", ".pwmeterrc.yaml", ".pwmeterrc.yml"}

// Config represents the pwmeter configuration
type Config struct {
	Root      string              `mapstructure:"root" json:"root"`
	RuleSet   string              `mapstructure:"ruleset" json:"ruleset,omitempty"`
	Threshold *int                `mapstructure:"threshold" json:"threshold,omitempty"`
	Format    string              `mapstructure:"format" json:"format"`
	Output    string              `mapstructure:"output" json:"output,omitempty"`
	Quiet     bool                `mapstructure:"quiet" json:"quiet"`
	Verbose   bool                `mapstructure:"verbose" json:"verbose"`
	LogLevel  string              `mapstructure:"logLevel" json:"logLevel"`
	Palette   strength.Palette    `mapstructure:"palette" json:"palette"`
	Rules     *ruleset.Definition `mapstructure:"rules" json:"rules,omitempty"`

	// ConfigFile is the file the configuration was read from, if any
	ConfigFile string `mapstructure:"-" json:"-"`
}

// LoadConfig loads configuration from defaults, the config file and PWMETER_* env vars.
// An explicit configFile must exist; the default locations are optional.
func LoadConfig(configFile string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("logLevel", "warn")
	viper.SetDefault("palette.weak", strength.DefaultPalette.Weak)
	viper.SetDefault("palette.medium", strength.DefaultPalette.Medium)
	viper.SetDefault("palette.strong", strength.DefaultPalette.Strong)
	viper.SetDefault("palette.neutral", strength.DefaultPalette.Neutral)

	used := ""
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
		used = configFile
	} else if path := FindConfigFile("."); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		used = path
	}

	viper.SetEnvPrefix("PWMETER")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.ConfigFile = used

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// FindConfigFile returns the first of DefaultConfigPaths present in dir, or ""
func FindConfigFile(dir string) string {
	for _, name := range DefaultConfigPaths {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s. Must be 'debug', 'info', 'warn', or 'error'", config.LogLevel)
	}

	if config.Threshold != nil && *config.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %d", *config.Threshold)
	}

	if config.RuleSet != "" && config.Rules != nil {
		return fmt.Errorf("ruleset and rules are mutually exclusive")
	}

	return nil
}

// SaveConfig saves the configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, append(jsonData, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
