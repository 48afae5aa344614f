package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const legacyPage = `import 'package:flutter/material.dart';

void save(BuildContext context) {
  ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Saved'), backgroundColor: Colors.green));
}
`

// newProject creates lib/features/profile/page.dart under a temporary root.
func newProject(t *testing.T) (root, page string) {
	t.Helper()
	root = t.TempDir()
	page = filepath.Join(root, "lib", "features", "profile", "page.dart")
	if err := os.MkdirAll(filepath.Dir(page), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(page, []byte(legacyPage), 0644); err != nil {
		t.Fatal(err)
	}
	return root, page
}

// TestRun verifies that the command line arguments are correctly parsed into the configuration
// and that the application runs without error for valid inputs.
func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		args      func(root string) []string
		expected  string
		migrated  bool
		expectErr bool
	}{
		{
			name:     "Default",
			args:     func(root string) []string { return []string{root, "--no-color"} },
			expected: "Files migrated: 1",
			migrated: true,
		},
		{
			name:     "DryRun",
			args:     func(root string) []string { return []string{root, "--dry-run", "--no-color"} },
			expected: "+  NotificationService.showSuccess(context, 'Saved');",
		},
		{
			name:      "Check",
			args:      func(root string) []string { return []string{root, "--check", "--no-color"} },
			expected:  "[FAIL]",
			expectErr: true,
		},
		{
			name:     "ExcludeGlob",
			args:     func(root string) []string { return []string{root, "--exclude-glob", "profile", "--no-color"} },
			expected: "No Dart files found.",
		},
		{
			name:      "UnknownFlag",
			args:      func(root string) []string { return []string{root, "--unknown-flag"} },
			expectErr: true,
		},
		{
			name:      "BadPolicy",
			args:      func(root string) []string { return []string{root, "--unclassified", "loud"} },
			expectErr: true,
		},
		{
			name:      "MissingRoot",
			args:      func(root string) []string { return []string{filepath.Join(root, "nope")} },
			expectErr: true,
		},
		{
			name:     "Help",
			args:     func(root string) []string { return []string{"--help"} },
			expected: "Usage: snackbar-migrate",
		},
		{
			name:     "Version",
			args:     func(root string) []string { return []string{"--version"} },
			expected: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, page := newProject(t)
			var buf bytes.Buffer
			err := run(tt.args(root), &buf)

			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output := buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("expected output to contain %q, got %q", tt.expected, output)
			}

			data, err := os.ReadFile(page)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(data) != legacyPage; got != tt.migrated {
				t.Errorf("migrated = %v, want %v", got, tt.migrated)
			}
		})
	}
}

// TestRun_ConfigAndReport verifies the TOML vocabulary and the JSON report end to end.
func TestRun_ConfigAndReport(t *testing.T) {
	root, page := newProject(t)
	toml := "helper = \"Toaster\"\nmodule = \"toaster.dart\"\n\n[methods]\nsuccess = \"ok\"\n"
	if err := os.WriteFile(filepath.Join(root, ".snackbar-migrate.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	reportPath := filepath.Join(t.TempDir(), "report.json")

	var buf bytes.Buffer
	if err := run([]string{root, "--json-report", reportPath, "--no-color"}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(page)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Toaster.ok(context, 'Saved');", "import '../../toaster.dart';"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("migrated file missing %q:\n%s", want, data)
		}
	}

	raw, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	var rep struct {
		FilesModified  []string       `json:"files_modified"`
		CallsRewritten map[string]int `json:"calls_rewritten"`
	}
	if err := json.Unmarshal(raw, &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.FilesModified) != 1 || rep.FilesModified[0] != "lib/features/profile/page.dart" {
		t.Errorf("files_modified = %v", rep.FilesModified)
	}
	if rep.CallsRewritten["success"] != 1 {
		t.Errorf("calls_rewritten = %v", rep.CallsRewritten)
	}
}

// TestRun_BadConfig verifies configuration errors stop the run before files are touched.
func TestRun_BadConfig(t *testing.T) {
	root, page := newProject(t)
	cfg := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(cfg, []byte("indent = -2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := run([]string{root, "--config", cfg}, &buf); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(page)
	if string(data) != legacyPage {
		t.Error("file was modified despite a bad configuration")
	}
}
