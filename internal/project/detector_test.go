package project

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

func touch(t *testing.T, parts ...string) {
	t.Helper()
	path := filepath.Join(parts...)
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

// TestFindProjectRoot tests project root detection climbing up directory tree
func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (string, string) // returns (startPath, expectedRoot)
	}{
		{
			name: "finds root with .pwmeter directory",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".pwmeter", "rules")
				return mkdir(t, tmpDir, "src", "pkg"), tmpDir
			},
		},
		{
			name: "finds root with .pwmeterrc.yaml",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				touch(t, tmpDir, ".pwmeterrc.yaml")
				return mkdir(t, tmpDir, "nested", "deep"), tmpDir
			},
		},
		{
			name: "finds root with .git directory",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".git")
				return mkdir(t, tmpDir, "internal"), tmpDir
			},
		},
		{
			name: "no project root - returns start path",
			setupFunc: func(t *testing.T) (string, string) {
				subDir := mkdir(t, t.TempDir(), "no-markers")
				return subDir, subDir
			},
		},
		{
			name: "dot path resolves against working directory",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				touch(t, tmpDir, ".pwmeterrc.json")

				origDir, _ := os.Getwd()
				if err := os.Chdir(tmpDir); err != nil {
					t.Fatalf("failed to change directory: %v", err)
				}
				t.Cleanup(func() {
					os.Chdir(origDir)
				})

				return ".", tmpDir
			},
		},
		{
			name: "nearest marker wins",
			setupFunc: func(t *testing.T) (string, string) {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, "outer", ".git")
				innerDir := mkdir(t, tmpDir, "outer", "inner")
				touch(t, innerDir, ".pwmeterrc.json")
				return innerDir, innerDir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startPath, expectedRoot := tt.setupFunc(t)

			got, err := FindProjectRoot(startPath)
			if err != nil {
				t.Fatalf("FindProjectRoot() error = %v", err)
			}

			// Resolve symlinks (macOS /var -> /private/var)
			absGot, err := filepath.EvalSymlinks(got)
			if err != nil {
				absGot, _ = filepath.Abs(got)
			}
			absExpected, err := filepath.EvalSymlinks(expectedRoot)
			if err != nil {
				absExpected, _ = filepath.Abs(expectedRoot)
			}

			if absGot != absExpected {
				t.Errorf("FindProjectRoot() = %v, want %v", absGot, absExpected)
			}
		})
	}
}

// TestIsProjectRoot tests the project root marker detection
func TestIsProjectRoot(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		want      bool
	}{
		{
			name: "directory with .pwmeter",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".pwmeter")
				return tmpDir
			},
			want: true,
		},
		{
			name: "directory with .pwmeterrc.yml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				touch(t, tmpDir, ".pwmeterrc.yml")
				return tmpDir
			},
			want: true,
		},
		{
			name: "directory with .git",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".git")
				return tmpDir
			},
			want: true,
		},
		{
			name: "empty directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			want: false,
		},
		{
			name: "directory with other files but no markers",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				touch(t, tmpDir, "go.mod")
				touch(t, tmpDir, "package.json")
				return tmpDir
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setupFunc(t)
			if got := isProjectRoot(path); got != tt.want {
				t.Errorf("isProjectRoot() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDetect tests project layout detection
func TestDetect(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantGit       bool
		wantRules     bool
		wantWordlists bool
		wantConfig    string
	}{
		{
			name: "full layout",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".git")
				mkdir(t, tmpDir, ".pwmeter", "rules")
				mkdir(t, tmpDir, ".pwmeter", "wordlists")
				touch(t, tmpDir, ".pwmeterrc.yaml")
				return tmpDir
			},
			wantGit:       true,
			wantRules:     true,
			wantWordlists: true,
			wantConfig:    ".pwmeterrc.yaml",
		},
		{
			name: "json config preferred over yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				touch(t, tmpDir, ".pwmeterrc.json")
				touch(t, tmpDir, ".pwmeterrc.yml")
				return tmpDir
			},
			wantConfig: ".pwmeterrc.json",
		},
		{
			name: "rules path that is a file does not count",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				mkdir(t, tmpDir, ".pwmeter")
				touch(t, tmpDir, ".pwmeter", "rules")
				return tmpDir
			},
		},
		{
			name: "empty",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.setupFunc(t)
			info := Detect(root)

			if info.Root != root {
				t.Errorf("Root = %q, want %q", info.Root, root)
			}
			if info.HasGit != tt.wantGit {
				t.Errorf("HasGit = %v, want %v", info.HasGit, tt.wantGit)
			}
			if info.HasRules != tt.wantRules {
				t.Errorf("HasRules = %v, want %v", info.HasRules, tt.wantRules)
			}
			if info.HasWordlists != tt.wantWordlists {
				t.Errorf("HasWordlists = %v, want %v", info.HasWordlists, tt.wantWordlists)
			}
			if info.ConfigFile != tt.wantConfig {
				t.Errorf("ConfigFile = %q, want %q", info.ConfigFile, tt.wantConfig)
			}
		})
	}
}
