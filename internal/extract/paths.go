package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Card path validation errors
var (
	ErrPathEmpty       = errors.New("card path cannot be empty")
	ErrPathIsDirectory = errors.New("card path cannot be a directory")
	ErrPathNotMarkdown = errors.New("card path must be a markdown file")
)

// IsMarkdown reports whether path has a .md extension, in any case.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// ValidateCardPath checks that raw names a markdown file cards can be written
// to. The file does not need to exist yet. Returns the trimmed path.
func ValidateCardPath(raw string) (string, error) {
	path, ok := trimLine(raw)
	if !ok {
		return "", ErrPathEmpty
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrPathIsDirectory, path)
	}

	if !IsMarkdown(path) {
		return "", fmt.Errorf("%w: %s", ErrPathNotMarkdown, path)
	}

	return path, nil
}

// WalkMarkdown returns every markdown file below dir in lexical order.
// Hidden directories (".git", ".obsidian", ...) are not descended into.
func WalkMarkdown(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsMarkdown(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}
