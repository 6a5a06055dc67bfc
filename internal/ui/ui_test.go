package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[██░░] 1/2", ProgressBar(1, 2, 4))
	assert.Equal(t, "[░░░░] 0/1", ProgressBar(0, 0, 4))
	assert.Equal(t, "[████] 3/2", ProgressBar(3, 2, 4))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate("a rather long title", 8)
	assert.Equal(t, 8, ansi.StringWidth(got))
	assert.Equal(t, "a rathe…", got)
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestSetThemeFallsBackToClassic(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)
	SetTheme("whatever")
	assert.Equal(t, "classic", Current().Name)
}

func TestOKAndFailPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ added\n✖ nope\n", buf.String())
}

func TestHeaderCounts(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	assert.Equal(t, "Todos   ✔ 1  • 2  Total 3", Header(1, 2))
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := RenderMarkdown("# Keys\n\n- `a` add", 60)
	assert.Contains(t, ansi.Strip(out), "Keys")
	assert.Contains(t, ansi.Strip(out), "add")
	assert.Equal(t, "", RenderMarkdown("   ", 60))
}
