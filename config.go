package main

import "github.com/alecthomas/kong"

// Config holds the complete configuration mapping to CLI flags.
// The migration vocabulary (helper class, method names, styling tokens) lives
// in the TOML file named by --config; flags only control what is scanned and how.
type Config struct {
	// Root is the Flutter project directory.
	Root string `arg:"" optional:"" type:"existingdir" help:"Project root directory." default:"."`

	// Config is an explicit path to the TOML vocabulary file.
	// When empty, .snackbar-migrate.toml in the root is used if it exists.
	Config string `name:"config" short:"c" type:"path" help:"Path to a TOML configuration file."`

	// SourceDir is the directory relative import paths are computed from.
	SourceDir string `name:"source-dir" help:"Source root, relative to the project root." default:"lib"`

	// ScanDir is the subtree searched for Dart files.
	ScanDir string `name:"scan-dir" help:"Directory to migrate, relative to the project root." default:"lib/features"`

	// ExcludeGlob is a list of glob patterns matched against paths relative to the scan directory.
	ExcludeGlob []string `name:"exclude-glob" help:"Glob patterns to exclude files or directories (e.g. 'legacy/**')."`

	// UseDefaultExclusions skips generated sources (*.g.dart, *.freezed.dart, ...).
	// Disable with --no-default-exclusions.
	UseDefaultExclusions bool `name:"default-exclusions" negatable:"" help:"Skip generated Dart files." default:"true"`

	// DryRun enables preview mode.
	DryRun bool `name:"dry-run" help:"Print unified diffs to stdout instead of writing files."`

	// Check enables CI mode.
	// Nothing is written and the tool fails when any file still needs migration. Implies --dry-run.
	Check bool `name:"check" aliases:"verify" help:"Verification mode. Fails if any file still needs migration. Implies --dry-run."`

	// Jobs bounds parallel file processing.
	Jobs int `name:"jobs" short:"j" help:"Number of files processed in parallel (0 = number of CPUs)." default:"0"`

	// Unclassified overrides the policy for snack bars without recognisable styling.
	Unclassified string `name:"unclassified" help:"Policy for unstyled snack bars: 'info' or 'review'. Overrides the config file."`

	// JSONReport is where the machine readable report is written.
	JSONReport string `name:"json-report" type:"path" help:"Write a JSON report to this file."`

	// NoColor disables coloured summary output.
	NoColor bool `name:"no-color" help:"Disable coloured output."`

	// Get the version of the package, defaults to `dev`
	Version kong.VersionFlag `name:"version" help:"Print version information and exit."`
}
