package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/todolist"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func seeded(titles ...string) *todolist.Controller {
	ctl := todolist.New()
	for _, title := range titles {
		ctl.Add(title)
	}
	return ctl
}

func TestAddItem(t *testing.T) {
	ctl := seeded()
	m := send(t, New(ctl, Options{}), runes("a"), runes("  Buy milk  "), enter)

	require.Equal(t, 1, ctl.Len())
	assert.Equal(t, "Buy milk", ctl.List()[0].Title())
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.list.Items(), 1)
}

func TestAddEmptyInputKeepsPromptOpen(t *testing.T) {
	ctl := seeded()
	m := send(t, New(ctl, Options{}), runes("a"), runes("   "), enter)
	assert.Equal(t, 0, ctl.Len())
	assert.Equal(t, modeAdd, m.mode)

	m = send(t, m, esc)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 0, ctl.Len())
}

func TestAddLongTitleUnchanged(t *testing.T) {
	ctl := seeded()
	title := strings.Repeat("ab", 600)
	send(t, New(ctl, Options{}), runes("a"), runes(title), enter)

	require.Equal(t, 1, ctl.Len())
	assert.Equal(t, title, ctl.List()[0].Title())
}

func TestAddHonoursConfiguredCharLimit(t *testing.T) {
	ctl := seeded()
	send(t, New(ctl, Options{CharLimit: 5}), runes("a"), runes("abcdefgh"), enter)

	require.Equal(t, 1, ctl.Len())
	assert.Equal(t, "abcde", ctl.List()[0].Title())
}

func TestToggleSelected(t *testing.T) {
	ctl := seeded("a", "b")
	send(t, New(ctl, Options{}), down, space)
	assert.False(t, ctl.List()[0].Done())
	assert.True(t, ctl.List()[1].Done())
}

func TestDeleteSelected(t *testing.T) {
	ctl := seeded("a", "b", "c")
	m := send(t, New(ctl, Options{}), down, runes("d"))
	require.Equal(t, 2, ctl.Len())
	assert.Equal(t, "a", ctl.List()[0].Title())
	assert.Equal(t, "c", ctl.List()[1].Title())
	assert.Equal(t, 1, m.list.Index())

	m = send(t, m, runes("d"), runes("d"), runes("d"))
	assert.Equal(t, 0, ctl.Len())
	assert.Nil(t, m.selected())
}

func TestEditCommit(t *testing.T) {
	ctl := seeded("old")
	m := send(t, New(ctl, Options{}), runes("e"))
	it := ctl.List()[0]
	assert.True(t, it.Editable)
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "old", m.ti.Value())

	m.ti.SetValue("  new title ")
	m = send(t, m, enter)
	assert.Equal(t, "new title", it.Title())
	assert.False(t, it.Editable)
	assert.Equal(t, 1, ctl.Len())
	assert.Equal(t, modeList, m.mode)
}

func TestEditEmptyDeletes(t *testing.T) {
	ctl := seeded("keep", "drop")
	m := send(t, New(ctl, Options{}), down, runes("e"))
	m.ti.SetValue("")
	m = send(t, m, enter)
	require.Equal(t, 1, ctl.Len())
	assert.Equal(t, "keep", ctl.List()[0].Title())
	assert.Len(t, m.list.Items(), 1)
}

func TestEditTabCommitsLikeBlur(t *testing.T) {
	ctl := seeded("old")
	m := send(t, New(ctl, Options{}), runes("e"))
	m.ti.SetValue("renamed")
	send(t, m, tab)
	assert.Equal(t, "renamed", ctl.List()[0].Title())
}

func TestEditEscapeCancels(t *testing.T) {
	ctl := seeded("old")
	m := send(t, New(ctl, Options{}), runes("e"))
	m.ti.SetValue("ignored")
	m = send(t, m, esc)
	it := ctl.List()[0]
	assert.Equal(t, "old", it.Title())
	assert.False(t, it.Editable)
	assert.Equal(t, modeList, m.mode)
}

func TestTabCyclesStatusFilter(t *testing.T) {
	ctl := seeded("a", "b")
	ctl.Toggle(ctl.List()[1])
	m := New(ctl, Options{})
	assert.Len(t, m.list.Items(), 2)

	m = send(t, m, tab)
	assert.Equal(t, todolist.Active, ctl.Status())
	assert.Len(t, m.list.Items(), 1)

	m = send(t, m, tab)
	assert.Equal(t, todolist.Completed, ctl.Status())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "b", m.selected().Title())

	m = send(t, m, tab)
	assert.Equal(t, todolist.All, ctl.Status())
	assert.Len(t, m.list.Items(), 2)
}

func TestQuit(t *testing.T) {
	_, cmd := New(seeded(), Options{}).Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsItemsAndCounts(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	ctl := seeded("Buy milk", "Call mom")
	ctl.Toggle(ctl.List()[0])
	m := send(t, New(ctl, Options{}), tea.WindowSizeMsg{Width: 80, Height: 24})
	out := m.View()
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Call mom")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "1/2")
}
