package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Zero(t, cfg.Input.CharLimit, "input is unlimited unless configured")
}

func TestLoadMissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "user.toml"), filepath.Join(dir, "todo.toml"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.toml", "theme = \"neon\"\n[log]\nlevel = \"debug\"\n")
	project := writeFile(t, dir, "todo.toml", "theme = \"mono\"\n[web]\naddr = \":9000\"\n")
	explicit := writeFile(t, dir, "x.toml", "[input]\nchar_limit = 80\n")

	cfg, err := LoadFrom(user, project, explicit, []string{"TODO_ADDR=:7000", "UNRELATED"})
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7000", cfg.Web.Addr)
	assert.Equal(t, 80, cfg.Input.CharLimit)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := LoadFrom("", "", filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "theme = \n")
	_, err := LoadFrom("", "", path, nil)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
	}{
		{"theme", []string{"TODO_THEME=rainbow"}},
		{"color", []string{"TODO_COLOR=sometimes"}},
		{"level", []string{"TODO_LOG_LEVEL=loud"}},
		{"format", []string{"TODO_LOG_FORMAT=xml"}},
		{"char limit", []string{"TODO_CHAR_LIMIT=lots"}},
		{"negative char limit", []string{"TODO_CHAR_LIMIT=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom("", "", "", tt.environ)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
