// Package filter decides which source files are excluded from migration.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Filter matches slash-separated paths, relative to the scanned directory,
// against glob patterns. "*" stays within one path segment, "**" crosses them.
type Filter struct {
	patterns []string
	globs    []glob.Glob
}

// New compiles the provided glob patterns.
//
// patterns: A list of patterns such as "*.g.dart" or "legacy/**".
func New(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, p)
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Patterns returns the compiled patterns in order.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.patterns))
	copy(out, f.patterns)
	return out
}

// MatchesFile reports whether rel is excluded.
// The pattern is tried against the whole relative path and against its base
// name, so "*.g.dart" excludes generated files at any depth.
//
// rel: path relative to the scanned directory; OS separators are accepted.
func (f *Filter) MatchesFile(rel string) bool {
	if f == nil || rel == "" {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, g := range f.globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}
