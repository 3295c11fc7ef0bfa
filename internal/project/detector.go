package project

import (
	"os"
	"path/filepath"
)

// Info describes the pwmeter-relevant layout of a project root.
// Named 'Info' instead of 'ProjectInfo' to avoid stuttering (project.Info vs project.ProjectInfo).
type Info struct {
	Root         string
	HasGit       bool
	HasRules     bool
	HasWordlists bool
	ConfigFile   string
}

// rootMarkers identify a project root, checked in order
var rootMarkers = []string{".pwmeter", ".pwmeterrc.json", ".pwmeterrc.yaml", ".pwmeterrc.yml", ".git"}

// FindProjectRoot searches for a project root starting from the given path
// and climbing up the directory tree. It falls back to the start path.
func FindProjectRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if isProjectRoot(currentDir) {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return absPath, nil
}

func isProjectRoot(path string) bool {
	for _, marker := range rootMarkers {
		if exists(filepath.Join(path, marker)) {
			return true
		}
	}
	return false
}

// Detect reports which pwmeter files exist under rootPath
func Detect(rootPath string) *Info {
	info := &Info{
		Root:         rootPath,
		HasGit:       exists(filepath.Join(rootPath, ".git")),
		HasRules:     isDir(filepath.Join(rootPath, ".pwmeter", "rules")),
		HasWordlists: isDir(filepath.Join(rootPath, ".pwmeter", "wordlists")),
	}

	for _, name := range rootMarkers[1:4] {
		if exists(filepath.Join(rootPath, name)) {
			info.ConfigFile = name
			break
		}
	}

	return info
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
