package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newRunner() (*scriptRunner, *bytes.Buffer, *bytes.Buffer) {
	lipgloss.SetColorProfile(termenv.Ascii)
	ui.SetTheme("classic")
	var out, errOut bytes.Buffer
	return &scriptRunner{ctl: todolist.New(), out: &out, errOut: &errOut}, &out, &errOut
}

func TestScriptScenario(t *testing.T) {
	r, out, _ := newRunner()
	err := r.run(strings.NewReader("# start empty\nadd Buy milk\n\nrm 1\nls\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.ctl.Len())
	assert.Contains(t, out.String(), "✔ added #1 Buy milk")
	assert.Contains(t, out.String(), "✔ removed")
	assert.Contains(t, out.String(), "no items")
}

func TestScriptEditFlow(t *testing.T) {
	r, out, _ := newRunner()
	script := strings.Join([]string{
		"add old title",
		"add second",
		"edit 1",
		"update 1   new title  ",
		"edit 2",
		"cancel 2",
		"edit 2",
		"update 2",
	}, "\n")
	require.NoError(t, r.run(strings.NewReader(script)))

	require.Equal(t, 1, r.ctl.Len())
	it := r.ctl.List()[0]
	assert.Equal(t, "new title", it.Title())
	assert.False(t, it.Editable)
	assert.Contains(t, out.String(), "✔ cancelled")
	assert.Contains(t, out.String(), "✔ removed")
}

func TestScriptIgnoresOutOfRangeRemove(t *testing.T) {
	r, out, errOut := newRunner()
	require.NoError(t, r.run(strings.NewReader("add a\nrm 0\nrm 5\n")))
	assert.Equal(t, 1, r.ctl.Len())
	assert.NotContains(t, out.String(), "removed")
	assert.Empty(t, errOut.String())
}

func TestScriptReportsBadLines(t *testing.T) {
	r, _, errOut := newRunner()
	err := r.run(strings.NewReader("add   \ntoggle 3\nrm one\nupdate 1 x\nfrobnicate\nadd ok\n"))
	require.ErrorIs(t, err, errScriptFailed)
	assert.Equal(t, 1, r.ctl.Len())

	msgs := errOut.String()
	assert.Contains(t, msgs, "line 1: add: empty title")
	assert.Contains(t, msgs, "line 2: toggle: index out of range: have 0, got 3")
	assert.Contains(t, msgs, `line 3: rm: not a number: "one"`)
	assert.Contains(t, msgs, "line 4: update: index out of range")
	assert.Contains(t, msgs, `line 5: unknown command "frobnicate"`)
}

func TestScriptStatusAndList(t *testing.T) {
	r, out, _ := newRunner()
	require.NoError(t, r.run(strings.NewReader("add a\nadd b\ntoggle 2\nstatus completed\nls\n")))
	got := out.String()
	assert.Contains(t, got, " 2. ☑ b")
	assert.NotContains(t, got, " 1. ☐ a")
	assert.Contains(t, got, "Total 2")
}

func TestScriptGroupedList(t *testing.T) {
	r, out, _ := newRunner()
	require.NoError(t, r.run(strings.NewReader("add a\nadd b\ndone 1\nls group\n")))
	got := out.String()
	pending := strings.Index(got, "Pending")
	done := strings.Index(got, "Done")
	require.True(t, pending >= 0 && done > pending, got)
	assert.Less(t, strings.Index(got, "2. ☐ b"), done)
	assert.Greater(t, strings.Index(got, "1. ☑ a"), done)
}

func TestScriptFindAndDump(t *testing.T) {
	r, out, _ := newRunner()
	require.NoError(t, r.run(strings.NewReader("add Buy milk\nadd Call mom\ntoggle 2\nfind milk\n")))
	assert.Contains(t, out.String(), "Buy milk")
	assert.NotContains(t, out.String(), "☑ Call mom")

	out.Reset()
	require.NoError(t, r.run(strings.NewReader("dump\n")))
	assert.Equal(t, "- title: Buy milk\n- title: Call mom\n  done: true\n", out.String())
}

// isolateConfig hides the developer's config files and TODO_* variables
// from Execute.
func isolateConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "TODO_") {
			t.Setenv(name, "")
		}
	}
	t.Chdir(t.TempDir())
}

func TestIsolateConfigClearsEnvironment(t *testing.T) {
	t.Setenv("TODO_THEME", "rainbow")
	t.Setenv("TODO_CHAR_LIMIT", "x")
	isolateConfig(t)

	var out, errOut bytes.Buffer
	require.Equal(t, 0, Execute([]string{"--color", "never", "keys"}, &out, &errOut), errOut.String())
}

func TestExecuteScriptWithSeed(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "todo.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme = \"mono\"\n"), 0o644))
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("- title: from seed\n"), 0o644))
	script := filepath.Join(dir, "events.txt")
	require.NoError(t, os.WriteFile(script, []byte("toggle 1\nls\n"), 0o644))

	var out, errOut bytes.Buffer
	code := Execute([]string{"--config", cfgPath, "--color", "never", "script", "--seed", seed, "--add", "from flag", script}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), " 1. [x] from seed")
	assert.Contains(t, out.String(), " 2. [ ] from flag")
}

func TestExecuteUsageErrors(t *testing.T) {
	isolateConfig(t)
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, Execute([]string{"--color", "never", "--theme", "rainbow", "keys"}, &out, &errOut))
	assert.Equal(t, 2, Execute([]string{"--no-such-flag"}, &out, &errOut))
	assert.Equal(t, 2, Execute([]string{"script", "a", "b"}, &out, &errOut))
	assert.Equal(t, 1, Execute([]string{"--color", "never", "script", filepath.Join(t.TempDir(), "missing")}, &out, &errOut))
}
