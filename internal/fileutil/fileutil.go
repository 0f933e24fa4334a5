package fileutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/evanrichards/tree-sorter-imports/internal/watch"
)

// HasValidExtension checks if a file has one of the valid extensions
func HasValidExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ValidateExcludes checks that every exclude pattern is a valid glob.
func ValidateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Excluded reports whether path, relative to root, matches an exclude
// pattern. Patterns use ** globs, e.g. "**/*.generated.ts".
func Excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, filepath.ToSlash(path)); ok {
			return true
		}
	}
	return false
}

// FindFiles recursively finds all files with the given extensions
func FindFiles(fsys afero.Fs, root string, extensions, excludes []string) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and node_modules
		if info.IsDir() {
			if path != root && watch.SkipDir(info.Name()) {
				return filepath.SkipDir
			}
			if path != root && Excluded(root, path, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if HasValidExtension(path, extensions) && !Excluded(root, path, excludes) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
