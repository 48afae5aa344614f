package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelMarks/snackbar-migrate/pkg/classify"
	"github.com/SamuelMarks/snackbar-migrate/pkg/migrate"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_MatchesEngineDefaults(t *testing.T) {
	f := Default()
	require.NoError(t, f.Validate())

	opts, err := f.EngineOptions("")
	require.NoError(t, err)
	assert.Equal(t, migrate.DefaultOptions(), opts)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
helper = "Toaster"
module = "ui/toaster.dart"
indent = 4
unclassified = "review"

[legacy]
receiver = "Messenger"

[methods]
success = "ok"
error = "fail"
info = "note"

[tokens]
error = ["Colors.redAccent", "AppColors . danger"]
prefixes = ["Fehler"]
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Toaster", f.Helper)
	assert.Equal(t, 4, f.Indent)
	assert.Equal(t, "Messenger", f.Legacy.Receiver)
	// Keys missing from the file keep their defaults.
	assert.Equal(t, "showSnackBar", f.Legacy.Method)
	assert.Equal(t, []string{"colors.green"}, f.Tokens.Success)

	opts, err := f.EngineOptions("")
	require.NoError(t, err)
	assert.Equal(t, classify.Unclassified, opts.Classify.Default)
	assert.Equal(t, []string{"colors.redaccent", "appcolors.danger"}, opts.Classify.ErrorTokens)
	assert.Equal(t, []string{"Fehler"}, opts.Extract.Prefixes)
	assert.Equal(t, "ui/toaster.dart", opts.Module)
	assert.Equal(t, "fail", opts.Rewrite.ErrorMethod)

	opts, err = f.EngineOptions("info")
	require.NoError(t, err)
	assert.Equal(t, classify.Info, opts.Classify.Default)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", `helper = `, "config"},
		{"unknown key", "helpr = \"X\"\n", "unknown keys: helpr"},
		{"empty name", "[methods]\nsuccess = \"\"\n", "methods.success must not be empty"},
		{"negative indent", "indent = -1\n", "indent must not be negative"},
		{"template without message", "template = \"{helper}.{method}(context);\"\n", "{message}"},
		{"bad policy", "unclassified = \"ignore\"\n", "unknown unclassified policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		f, path, err := Find("", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, Default(), f)
	})
	t.Run("file in root", func(t *testing.T) {
		root := t.TempDir()
		want := writeConfig(t, root, "helper = \"Toaster\"\n")
		f, path, err := Find("", root)
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.Equal(t, "Toaster", f.Helper)
	})
	t.Run("explicit path wins", func(t *testing.T) {
		root := t.TempDir()
		writeConfig(t, root, "helper = \"Toaster\"\n")
		other := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(other, []byte("helper = \"Banner\"\n"), 0644))
		f, path, err := Find(other, root)
		require.NoError(t, err)
		assert.Equal(t, other, path)
		assert.Equal(t, "Banner", f.Helper)
	})
}

func TestEngineOptions_BadPolicy(t *testing.T) {
	_, err := Default().EngineOptions("loud")
	assert.Error(t, err)
}
