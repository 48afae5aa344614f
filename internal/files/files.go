// Package files provides utilities for filesystem traversal and file collection.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/filter"
)

// CollectDartFiles collects all Dart source files in the directory tree rooted at dir.
// It traverses the directory using filepath.WalkDir, skipping directories and files whose
// path relative to dir is excluded by flt. Hidden directories (".dart_tool", ".git") are skipped.
// The result is in lexical order.
//
// dir: root directory to traverse.
// flt: exclusion filter, may be nil.
func CollectDartFiles(dir string, flt *filter.Filter) ([]string, error) {
	var files []string
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan directory %s is not a directory", dir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(absDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if flt.MatchesFile(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".dart") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
