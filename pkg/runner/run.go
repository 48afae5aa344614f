package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/SamuelMarks/snackbar-migrate/internal/files"
	"github.com/SamuelMarks/snackbar-migrate/pkg/filter"
	"github.com/SamuelMarks/snackbar-migrate/pkg/loader"
	"github.com/SamuelMarks/snackbar-migrate/pkg/migrate"
	"github.com/SamuelMarks/snackbar-migrate/pkg/report"
	"golang.org/x/sync/errgroup"
)

// Options configuration for the runner.
type Options struct {
	// Root is the project directory; SourceDir and ScanDir are relative to it.
	Root string
	// SourceDir is the directory import paths are computed from.
	SourceDir string
	// ScanDir is the subtree searched for Dart files.
	ScanDir              string
	ExcludeGlob          []string
	UseDefaultExclusions bool
	DryRun               bool
	Check                bool
	// Jobs bounds the number of files processed at once. Zero means GOMAXPROCS.
	Jobs     int
	Engine   migrate.Options
	Reporter *report.Reporter
	// Stdout receives dry-run diffs. Defaults to os.Stdout.
	Stdout io.Writer
}

type outcome struct {
	res  migrate.Result
	err  error
	done bool
}

// Run migrates every Dart file below the scan directory.
// Per-file failures are logged and recorded in the reporter; they never stop the run.
// In check mode nothing is written and an error is returned when any file would change.
//
// ctx: cancellation stops scheduling new files. Files already processed are
// still reported before ctx.Err() is returned.
// opts: run configuration.
func Run(ctx context.Context, opts Options) error {
	if opts.Check {
		opts.DryRun = true
	}
	if opts.Reporter == nil {
		opts.Reporter = report.New()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "lib"
	}
	if opts.ScanDir == "" {
		opts.ScanDir = opts.SourceDir
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	globs := opts.ExcludeGlob
	if opts.UseDefaultExclusions {
		globs = append(append([]string{}, globs...), filter.GetDefaults()...)
	}
	flt, err := filter.New(globs)
	if err != nil {
		return err
	}

	proj, err := loader.LoadProject(opts.Root, opts.SourceDir, opts.ScanDir)
	if err != nil {
		return err
	}
	if proj.Name != "" {
		log.Printf("Project %s", proj.Name)
	}

	sourceRoot := filepath.Join(proj.Root, opts.SourceDir)
	scanRoot := filepath.Join(proj.Root, proj.ScanDir)
	paths, err := files.CollectDartFiles(scanRoot, flt)
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	if len(paths) == 0 {
		log.Println("No Dart files found.")
		return nil
	}
	if opts.Check {
		log.Printf("Analysis mode: %d Dart files under %s", len(paths), scanRoot)
	} else {
		log.Printf("Scanning %d Dart files under %s", len(paths), scanRoot)
	}

	eng := migrate.New(opts.Engine)
	results := make([]outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := eng.MigrateFile(path, sourceRoot, opts.DryRun)
			results[i] = outcome{res: res, err: err, done: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	pending, err := summarize(opts, paths, results)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		log.Printf("Interrupted after %d of %d files.", completed(results), len(paths))
		return err
	}

	if opts.Check {
		if pending > 0 {
			log.Printf("[FAIL] %d files still use legacy snack bars.", pending)
			return fmt.Errorf("check failed: %d files need migration", pending)
		}
		log.Println("[PASS] No legacy snack bars to migrate.")
	}
	return nil
}

// summarize reports every processed file in path order and returns the number
// of files that changed or would change. Files never processed are skipped.
func summarize(opts Options, paths []string, results []outcome) (int, error) {
	pending := 0
	for i, path := range paths {
		out := results[i]
		if !out.done {
			continue
		}
		rel := relPath(opts.Root, path)
		opts.Reporter.IncScanned()
		if out.err != nil {
			log.Printf("✗ %s: %v", rel, out.err)
			opts.Reporter.AddError(rel, out.err)
			continue
		}
		if !out.res.Candidate {
			continue
		}
		opts.Reporter.IncCandidate()
		record(opts.Reporter, rel, out.res)

		if !out.res.Changed {
			opts.Reporter.IncUnchanged()
			continue
		}
		pending++
		opts.Reporter.AddFile(rel)
		if opts.Check {
			continue
		}
		log.Printf("✓ %s (%d calls)", rel, out.res.Rewritten())
		if opts.DryRun {
			if err := WriteDiff(opts.Stdout, rel, out.res.Original, out.res.Output); err != nil {
				return pending, err
			}
		}
	}
	return pending, nil
}

func completed(results []outcome) int {
	n := 0
	for _, r := range results {
		if r.done {
			n++
		}
	}
	return n
}

func record(r *report.Reporter, rel string, res migrate.Result) {
	for _, s := range res.Sites {
		switch s.Action {
		case migrate.Rewritten:
			r.AddCall(s.Severity.String())
		case migrate.Untouched:
			log.Printf("[WARN] %s:%d left untouched: %s", rel, s.Line, s.Reason)
			r.IncUntouched()
		case migrate.Review:
			r.AddReview(rel, s.Line, s.Message)
		}
	}
}

// relPath returns path relative to root in slash form, or path itself when that fails.
func relPath(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
