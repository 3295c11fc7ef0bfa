package discovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileType categorizes discovered files
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeRuleSet
	FileTypeWordlist
)

// String returns the human-readable name of the file type.
func (ft FileType) String() string {
	switch ft {
	case FileTypeRuleSet:
		return "ruleset"
	case FileTypeWordlist:
		return "wordlist"
	default:
		return "unknown"
	}
}

// FileTypeEntry defines the discovery configuration for a file type.
type FileTypeEntry struct {
	Type     FileType
	Patterns []string
}

// DefaultFileTypes is the registry of file types and their discovery patterns.
var DefaultFileTypes = []FileTypeEntry{
	{Type: FileTypeRuleSet, Patterns: []string{
		".pwmeter/rules/**/*.{yaml,yml,json}",
		"pwmeter.rules.{yaml,yml,json}",
	}},
	{Type: FileTypeWordlist, Patterns: []string{
		".pwmeter/wordlists/**/*.txt",
	}},
}

// File represents a discovered file with its metadata
type File struct {
	Path    string
	RelPath string
	Size    int64
	Type    FileType
}

// FileDiscovery manages file discovery operations
type FileDiscovery struct {
	rootPath string
}

// NewFileDiscovery creates a new FileDiscovery instance
func NewFileDiscovery(rootPath string) *FileDiscovery {
	return &FileDiscovery{rootPath: rootPath}
}

// DiscoverFiles finds all rule sets and wordlists under the root
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	return fd.DiscoverFilesWithRegistry(DefaultFileTypes)
}

// DiscoverFilesWithRegistry finds files using a custom registry.
func (fd *FileDiscovery) DiscoverFilesWithRegistry(registry []FileTypeEntry) ([]File, error) {
	var files []File

	for _, ftc := range registry {
		discovered, err := fd.findFilesByPattern(ftc.Patterns)
		if err != nil {
			return nil, fmt.Errorf("error discovering %s files: %w", ftc.Type.String(), err)
		}
		for _, f := range discovered {
			f.Type = ftc.Type
			files = append(files, f)
		}
	}

	return files, nil
}

// FindRuleSets returns the rule-set files under the root, sorted by relative path
func (fd *FileDiscovery) FindRuleSets() ([]File, error) {
	files, err := fd.DiscoverFilesWithRegistry(DefaultFileTypes[:1])
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// FindWordlists returns the wordlists under the root, sorted by relative path
func (fd *FileDiscovery) FindWordlists() ([]File, error) {
	files, err := fd.DiscoverFilesWithRegistry(DefaultFileTypes[1:])
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// findFilesByPattern finds files matching the given glob patterns
func (fd *FileDiscovery) findFilesByPattern(patterns []string) ([]File, error) {
	var files []File
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			fullPath := filepath.Join(fd.rootPath, match)
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			files = append(files, File{
				Path:    fullPath,
				RelPath: match,
				Size:    info.Size(),
			})
		}
	}

	return files, nil
}

// ExpandInputs expands glob arguments (including **) into file paths.
// Arguments without glob metacharacters are passed through unchanged so that a missing
// file is reported by the reader rather than silently dropped.
func ExpandInputs(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				paths = append(paths, pattern)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	return paths, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// DetectFileType determines the type of a file from its extension.
func DetectFileType(path string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FileTypeRuleSet, nil
	case ".txt", ".lst", "":
		return FileTypeWordlist, nil
	default:
		return FileTypeUnknown, fmt.Errorf(
			"unsupported file type: %s. pwmeter reads .yaml, .yml and .json rule sets", filepath.Ext(path))
	}
}

// ValidateFilePath checks that path exists, is a regular file and is not binary.
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	if info.Size() == 0 {
		return absPath, nil
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	defer f.Close()

	// Null bytes in the first 512 bytes mark a binary file
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	if bytes.Contains(buf[:n], []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}
