package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/SamuelMarks/snackbar-migrate/pkg/config"
	"github.com/SamuelMarks/snackbar-migrate/pkg/report"
	"github.com/SamuelMarks/snackbar-migrate/pkg/runner"
)

var version = "dev"

// main is the entry point for the application.
// It delegates execution to run() and exits with a fatal error if execution fails.
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run parses the arguments, loads the vocabulary file and migrates the project.
// It serves as the testable entry point for the application.
//
// args: The command line arguments (excluding the executable name).
// stdout: The writer for logs, diffs and the summary.
func run(args []string, stdout io.Writer) error {
	var cfg Config
	exited := false

	parser, err := kong.New(&cfg,
		kong.Name("snackbar-migrate"),
		kong.Description("Rewrite Flutter ScaffoldMessenger snack bars into calls to a shared notification helper."),
		kong.Vars{"version": version},
		kong.Writers(stdout, io.Discard),
		kong.Exit(func(int) { exited = true }), // Prevent os.Exit during tests
	)
	if err != nil {
		return err
	}

	_, err = parser.Parse(args)
	if exited {
		// --help or --version already printed
		return nil
	}
	if err != nil {
		return err
	}

	log.SetOutput(stdout)
	log.SetFlags(0)
	if cfg.NoColor {
		color.NoColor = true
	}

	file, path, err := config.Find(cfg.Config, cfg.Root)
	if err != nil {
		return err
	}
	if path != "" {
		log.Printf("Using configuration %s", path)
	}
	engine, err := file.EngineOptions(cfg.Unclassified)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep := report.New()
	runErr := runner.Run(ctx, runner.Options{
		Root:                 cfg.Root,
		SourceDir:            cfg.SourceDir,
		ScanDir:              cfg.ScanDir,
		ExcludeGlob:          cfg.ExcludeGlob,
		UseDefaultExclusions: cfg.UseDefaultExclusions,
		DryRun:               cfg.DryRun,
		Check:                cfg.Check,
		Jobs:                 cfg.Jobs,
		Engine:               engine,
		Reporter:             rep,
		Stdout:               stdout,
	})

	if rep.GetData().FilesScanned > 0 {
		rep.WriteSummary(stdout)
	}
	if cfg.JSONReport != "" {
		if err := writeReport(cfg.JSONReport, rep); err != nil {
			return err
		}
	}
	return runErr
}

func writeReport(path string, rep *report.Reporter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json report: %w", err)
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("json report: %w", err)
	}
	return f.Close()
}
