// Package migrate applies the snack bar migration to a single Dart file.
//
// A file is processed in one pass: every legacy call site is located, its
// message extracted, its severity classified and its replacement rendered.
// The helper import is only ensured when at least one site was rewritten.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SamuelMarks/snackbar-migrate/pkg/classify"
	"github.com/SamuelMarks/snackbar-migrate/pkg/extract"
	"github.com/SamuelMarks/snackbar-migrate/pkg/imports"
	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
	"github.com/SamuelMarks/snackbar-migrate/pkg/rewrite"
)

// Options bundles the configuration of every stage.
type Options struct {
	Pattern  match.Pattern
	Extract  extract.Options
	Classify classify.Options
	Rewrite  rewrite.Options
	// Module is the file name of the helper module imported by migrated files.
	Module string
}

// DefaultOptions migrates ScaffoldMessenger snack bars to NotificationService from shared.dart.
func DefaultOptions() Options {
	return Options{
		Pattern:  match.DefaultPattern(),
		Extract:  extract.DefaultOptions(),
		Classify: classify.DefaultOptions(),
		Rewrite:  rewrite.DefaultOptions(),
		Module:   "shared.dart",
	}
}

// Action is what happened to one call site.
type Action int

const (
	// Rewritten means the site was replaced by helper calls.
	Rewritten Action = iota
	// Untouched means the site cannot be rewritten safely: no message could be
	// isolated, the call is used as an expression, or the file is a part file.
	Untouched
	// Review means no styling rule fired and the policy asks for manual review.
	Review
)

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case Rewritten:
		return "rewritten"
	case Untouched:
		return "untouched"
	case Review:
		return "review"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Reasons a site is left untouched.
const (
	ReasonNoMessage  = "no message could be isolated"
	ReasonExpression = "call is used as an expression"
	ReasonPartFile   = "part files cannot import the helper"
)

// Site records the outcome for one call site.
type Site struct {
	Line     int
	Action   Action
	Severity classify.Severity
	Message  string
	// Reason explains an Untouched action.
	Reason string
}

// Result is the outcome of migrating one file.
type Result struct {
	Path string
	// Candidate reports whether the file passed the textual pre-filter.
	Candidate bool
	Original  string
	Output    string
	Changed   bool
	// ImportAdded reports whether the helper import was inserted.
	ImportAdded bool
	Sites       []Site
}

// Rewritten returns the number of rewritten sites.
func (r Result) Rewritten() int {
	n := 0
	for _, s := range r.Sites {
		if s.Action == Rewritten {
			n++
		}
	}
	return n
}

// Engine runs the migration pipeline. It holds no per-file state and is safe
// for concurrent use.
type Engine struct {
	opts Options
	rw   *rewrite.Rewriter
}

// New creates an Engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts, rw: rewrite.New(opts.Rewrite)}
}

// Transform migrates src, the content of a file depth directories below the source root.
func (e *Engine) Transform(src string, depth int) Result {
	res := Result{Candidate: e.opts.Pattern.Mentions(src), Original: src, Output: src}
	if !res.Candidate {
		return res
	}

	part := imports.IsPart(src)
	var b strings.Builder
	last := 0
	sc := match.NewScanner(src, e.opts.Pattern)
	for {
		site, ok := sc.Next()
		if !ok {
			break
		}
		switch {
		case part:
			res.Sites = append(res.Sites, Site{Line: site.Line, Action: Untouched, Reason: ReasonPartFile})
			continue
		case site.Position == match.Expression:
			res.Sites = append(res.Sites, Site{Line: site.Line, Action: Untouched, Reason: ReasonExpression})
			continue
		}
		msg, ok := extract.Message(site, e.opts.Extract)
		if !ok {
			res.Sites = append(res.Sites, Site{Line: site.Line, Action: Untouched, Reason: ReasonNoMessage})
			continue
		}
		class := classify.Classify(site, e.opts.Classify)
		repl, ok := e.rw.Replace(site, msg, class)
		if !ok {
			res.Sites = append(res.Sites, Site{Line: site.Line, Action: Review, Severity: class.Severity, Message: msg})
			continue
		}
		b.WriteString(src[last:site.Start])
		b.WriteString(repl)
		last = site.End
		res.Sites = append(res.Sites, Site{Line: site.Line, Action: Rewritten, Severity: class.Severity, Message: msg})
	}
	if res.Rewritten() == 0 {
		return res
	}
	b.WriteString(src[last:])

	out, added := imports.Ensure(b.String(), depth, e.opts.Module)
	out, _ = imports.Dedupe(out, imports.RelativePath(depth, e.opts.Module))
	res.Output = out
	res.ImportAdded = added
	res.Changed = out != src
	return res
}

// MigrateFile migrates the file at path in place.
// root is the source root used to compute the import depth.
// With dryRun set the file is never written.
func (e *Engine) MigrateFile(path, root string, dryRun bool) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("read %s: %w", path, err)
	}
	depth, err := Depth(path, root)
	if err != nil {
		return Result{Path: path}, err
	}

	res := e.Transform(string(data), depth)
	res.Path = path
	if !res.Changed || dryRun {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(res.Output), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	return res, nil
}

// Depth returns the number of directories between root and the directory of path.
func Depth(path, root string) (int, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return 0, fmt.Errorf("%s is not below %s: %w", path, root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return 0, fmt.Errorf("%s is not below source root %s", path, root)
	}
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return 0, nil
	}
	return len(strings.Split(dir, "/")), nil
}
