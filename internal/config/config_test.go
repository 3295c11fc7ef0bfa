package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotcommander/pwmeter/internal/strength"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp switches into a fresh temp dir with a clean viper for the duration of the test
func chdirTemp(t *testing.T) string {
	t.Helper()
	viper.Reset()
	tmpDir := t.TempDir()

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
		viper.Reset()
	})
	return tmpDir
}

// TestLoadConfigDefaults tests that default values are set correctly
func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, ".", config.Root)
	assert.Equal(t, "console", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Empty(t, config.RuleSet)
	assert.Nil(t, config.Threshold)
	assert.Nil(t, config.Rules)
	assert.False(t, config.Quiet)
	assert.False(t, config.Verbose)
	assert.Equal(t, strength.DefaultPalette, config.Palette)
	assert.Empty(t, config.ConfigFile)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pwmeterrc.yml"), []byte("quiet: true\n"), 0644))
	assert.Equal(t, filepath.Join(dir, ".pwmeterrc.yml"), FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pwmeterrc.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, ".pwmeterrc.json"), FindConfigFile(dir), "json wins")
}

// TestLoadConfigFromJSON tests loading configuration from a JSON file
func TestLoadConfigFromJSON(t *testing.T) {
	tmpDir := chdirTemp(t)

	configData := map[string]any{
		"ruleset":   "rules/strict.yaml",
		"threshold": 55,
		"format":    "json",
		"output":    "report.json",
		"quiet":     true,
		"logLevel":  "debug",
		"palette": map[string]any{
			"medium": "yellow",
		},
	}
	jsonData, err := json.MarshalIndent(configData, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".pwmeterrc.json"), jsonData, 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ".pwmeterrc.json", config.ConfigFile)
	assert.Equal(t, "rules/strict.yaml", config.RuleSet)
	require.NotNil(t, config.Threshold)
	assert.Equal(t, 55, *config.Threshold)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "report.json", config.Output)
	assert.True(t, config.Quiet)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "yellow", config.Palette.Medium)
	assert.Equal(t, "red", config.Palette.Weak, "unset palette entries keep defaults")
}

// TestLoadConfigFromYAMLWithInlineRules tests inline rule definitions
func TestLoadConfigFromYAMLWithInlineRules(t *testing.T) {
	tmpDir := chdirTemp(t)

	yamlContent := `
format: markdown
rules:
  name: inline
  threshold_score: 15
  attributes:
    - name: Long
      max_value: 10
      threshold: 12
    - name: Upper
      kind: contains_upper
      max_value: 5
      threshold: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".pwmeterrc.yaml"), []byte(yamlContent), 0644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	require.NotNil(t, config.Rules)
	assert.Equal(t, "inline", config.Rules.Name)
	assert.Equal(t, 15, config.Rules.ThresholdScore)
	require.Len(t, config.Rules.Attributes, 2)
	assert.Equal(t, "contains_upper", config.Rules.Attributes[1].Kind)
	assert.Equal(t, 12, config.Rules.Attributes[0].Threshold)
}

// TestLoadConfigExplicitFile tests the --config path
func TestLoadConfigExplicitFile(t *testing.T) {
	tmpDir := chdirTemp(t)
	path := filepath.Join(tmpDir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	tmpDir := chdirTemp(t)

	_, err := LoadConfig(filepath.Join(tmpDir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestLoadConfigEnv tests PWMETER_* environment overrides
func TestLoadConfigEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PWMETER_FORMAT", "markdown")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "markdown", config.Format)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad format", "format: xml\n", "invalid format"},
		{"bad log level", "logLevel: chatty\n", "invalid log level"},
		{"negative threshold", "threshold: -1\n", "threshold must not be negative"},
		{"ruleset and rules", "ruleset: a.yaml\nrules:\n  attributes: []\n", "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := chdirTemp(t)
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".pwmeterrc.yaml"), []byte(tt.content), 0644))

			_, err := LoadConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestSaveConfig tests writing and re-reading a configuration
func TestSaveConfig(t *testing.T) {
	tmpDir := chdirTemp(t)
	threshold := 30
	original := &Config{
		Root:      ".",
		Format:    "console",
		LogLevel:  "info",
		Threshold: &threshold,
		Palette:   strength.DefaultPalette,
	}

	path := filepath.Join(tmpDir, "nested", ".pwmeterrc.json")
	require.NoError(t, SaveConfig(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "info", decoded.LogLevel)
	require.NotNil(t, decoded.Threshold)
	assert.Equal(t, 30, *decoded.Threshold)
	assert.Equal(t, strength.DefaultPalette, decoded.Palette)
}
