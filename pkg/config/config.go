// Package config loads the migration vocabulary from a TOML file.
//
// Every key is optional; missing keys keep the Flutter defaults. A minimal file:
//
//	helper = "Toaster"
//	module = "ui/toaster.dart"
//
//	[methods]
//	success = "ok"
//	error = "fail"
//	info = "note"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/SamuelMarks/snackbar-migrate/pkg/classify"
	"github.com/SamuelMarks/snackbar-migrate/pkg/extract"
	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
	"github.com/SamuelMarks/snackbar-migrate/pkg/migrate"
	"github.com/SamuelMarks/snackbar-migrate/pkg/rewrite"
)

// DefaultFileName is looked up in the project root when no file is given.
const DefaultFileName = ".snackbar-migrate.toml"

// File is the TOML document.
type File struct {
	Helper   string `toml:"helper"`
	Module   string `toml:"module"`
	Indent   int    `toml:"indent"`
	Template string `toml:"template"`
	// Unclassified is "info" or "review".
	Unclassified string `toml:"unclassified"`

	Legacy  Legacy  `toml:"legacy"`
	Methods Methods `toml:"methods"`
	Tokens  Tokens  `toml:"tokens"`
}

// Legacy names the parts of the call being replaced.
type Legacy struct {
	Receiver   string `toml:"receiver"`
	Accessor   string `toml:"accessor"`
	Method     string `toml:"method"`
	Widget     string `toml:"widget"`
	ContentArg string `toml:"content_arg"`
	TextWidget string `toml:"text_widget"`
}

// Methods names the helper operations.
type Methods struct {
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Info    string `toml:"info"`
}

// Tokens is the styling and message vocabulary.
type Tokens struct {
	Error         []string `toml:"error"`
	Success       []string `toml:"success"`
	ErrorMarkers  []string `toml:"error_markers"`
	Prefixes      []string `toml:"prefixes"`
	CleanupMethod string   `toml:"cleanup_method"`
	CleanupLabel  string   `toml:"cleanup_label"`
}

// Default returns the configuration equivalent to migrate.DefaultOptions.
func Default() File {
	d := migrate.DefaultOptions()
	return File{
		Helper:       d.Rewrite.Helper,
		Module:       d.Module,
		Indent:       d.Rewrite.Indent,
		Template:     d.Rewrite.Template,
		Unclassified: "info",
		Legacy: Legacy{
			Receiver:   d.Pattern.Receiver,
			Accessor:   d.Pattern.Accessor,
			Method:     d.Pattern.Method,
			Widget:     d.Pattern.Widget,
			ContentArg: d.Extract.ContentArg,
			TextWidget: d.Extract.TextWidget,
		},
		Methods: Methods{
			Success: d.Rewrite.SuccessMethod,
			Error:   d.Rewrite.ErrorMethod,
			Info:    d.Rewrite.InfoMethod,
		},
		Tokens: Tokens{
			Error:         d.Classify.ErrorTokens,
			Success:       d.Classify.SuccessTokens,
			ErrorMarkers:  d.Classify.ErrorMarkers,
			Prefixes:      d.Extract.Prefixes,
			CleanupMethod: d.Extract.CleanupMethod,
			CleanupLabel:  d.Extract.CleanupLabel,
		},
	}
}

// Load decodes the file at path on top of the defaults and validates the result.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
//
// path: location of the TOML file.
func Load(path string) (File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Find returns the configuration for a project: the explicit path when set,
// otherwise DefaultFileName in root when it exists, otherwise the defaults.
func Find(explicit, root string) (File, string, error) {
	if explicit != "" {
		f, err := Load(explicit)
		return f, explicit, err
	}
	path := filepath.Join(root, DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return File{}, "", err
	}
	f, err := Load(path)
	return f, path, err
}

// Validate rejects configurations that would generate broken code.
func (f File) Validate() error {
	names := []struct {
		key, value string
	}{
		{"helper", f.Helper},
		{"module", f.Module},
		{"legacy.receiver", f.Legacy.Receiver},
		{"legacy.accessor", f.Legacy.Accessor},
		{"legacy.method", f.Legacy.Method},
		{"legacy.widget", f.Legacy.Widget},
		{"legacy.content_arg", f.Legacy.ContentArg},
		{"legacy.text_widget", f.Legacy.TextWidget},
		{"methods.success", f.Methods.Success},
		{"methods.error", f.Methods.Error},
		{"methods.info", f.Methods.Info},
	}
	for _, n := range names {
		if strings.TrimSpace(n.value) == "" {
			return fmt.Errorf("%s must not be empty", n.key)
		}
	}
	if f.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", f.Indent)
	}
	if err := rewrite.ValidateTemplate(f.Template); err != nil {
		return err
	}
	if _, err := classify.ParsePolicy(f.Unclassified); err != nil {
		return err
	}
	return nil
}

// EngineOptions converts the file into engine options.
// policy overrides the file's unclassified setting when not empty.
func (f File) EngineOptions(policy string) (migrate.Options, error) {
	if policy == "" {
		policy = f.Unclassified
	}
	sev, err := classify.ParsePolicy(policy)
	if err != nil {
		return migrate.Options{}, err
	}
	return migrate.Options{
		Pattern: match.Pattern{
			Receiver: f.Legacy.Receiver,
			Accessor: f.Legacy.Accessor,
			Method:   f.Legacy.Method,
			Widget:   f.Legacy.Widget,
		},
		Extract: extract.Options{
			ContentArg:    f.Legacy.ContentArg,
			TextWidget:    f.Legacy.TextWidget,
			Prefixes:      f.Tokens.Prefixes,
			CleanupMethod: f.Tokens.CleanupMethod,
			CleanupLabel:  f.Tokens.CleanupLabel,
		},
		Classify: classify.Options{
			ErrorTokens:   lower(f.Tokens.Error),
			SuccessTokens: lower(f.Tokens.Success),
			ErrorMarkers:  f.Tokens.ErrorMarkers,
			Default:       sev,
		},
		Rewrite: rewrite.Options{
			Helper:        f.Helper,
			SuccessMethod: f.Methods.Success,
			ErrorMethod:   f.Methods.Error,
			InfoMethod:    f.Methods.Info,
			Template:      f.Template,
			Indent:        f.Indent,
		},
		Module: f.Module,
	}, nil
}

// lower normalizes styling tokens to the compact lower-case form the classifier compares against.
func lower(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.Join(strings.Fields(t), ""))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
