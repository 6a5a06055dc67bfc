// Package tui is the terminal front end: a bubbletea list over the
// session's controller with inline add and edit.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Options tune the program.
type Options struct {
	CharLimit int
	Logger    *log.Logger
}

// listItem adapts *model.Item to bubbles/list.Item.
type listItem struct {
	item *model.Item
}

func (i listItem) Title() string       { return i.item.Title() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.item.Title()
	if it.item.Done() {
		box = t.Success.Render(t.BoxChecked)
		text = t.DoneText.Render(text)
	}
	if it.item.Editable {
		text += " " + t.Accent.Render("(editing)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, ui.Truncate(prefix+box+" "+text, m.Width()))
}

// Model implements tea.Model over a shared controller.
type Model struct {
	ctl  *todolist.Controller
	log  *log.Logger
	list list.Model
	ti   textinput.Model

	mode    mode
	editing *model.Item

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete"))
	statusBind = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter"))
)

func New(ctl *todolist.Controller, opts Options) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, deleteBind, statusBind}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = opts.CharLimit

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		ctl:    ctl,
		log:    logger,
		list:   l,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Run starts the program in the alt screen and blocks until the user quits.
func Run(ctl *todolist.Controller, opts Options) error {
	m := New(ctl, opts)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.resize(w, h)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m.log.Info("session ended", "items", ctl.Len(), "remaining", len(ctl.Remaining()))
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.mode = modeAdd
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			return m, m.ti.Focus()
		case "e", "enter":
			it := m.selected()
			if it == nil {
				return m, nil
			}
			m.ctl.Edit(it)
			m.editing = it
			m.mode = modeEdit
			m.ti.SetValue(it.Title())
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit item title..."
			m.refresh()
			return m, m.ti.Focus()
		case " ":
			if it := m.selected(); it != nil {
				m.ctl.Toggle(it)
				m.refresh()
			}
			return m, nil
		case "d", "x":
			if it := m.selected(); it != nil {
				m.ctl.Remove(m.ctl.IndexOf(it))
				m.refresh()
			}
			return m, nil
		case "tab":
			m.ctl.SetStatus(m.ctl.Status().Next())
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			it, added := m.ctl.Submit(m.ti.Value())
			if !added {
				return m, nil
			}
			m.closeInput()
			m.refresh()
			m.selectItem(it)
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		// tab moves focus away from the field, which commits like a blur.
		case "enter", "tab":
			it := m.editing
			m.ctl.Update(it, m.ti.Value())
			m.closeInput()
			m.refresh()
			m.selectItem(it)
			return m, nil
		case "esc":
			m.ctl.CancelEditing(m.editing)
			m.closeInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editing = nil
	m.ti.SetValue("")
	m.ti.Blur()
}

// refresh rebuilds the list rows from the controller's visible items.
func (m *Model) refresh() {
	idx := m.list.Index()
	visible := m.ctl.Visible()
	rows := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		rows = append(rows, listItem{item: it})
	}
	m.list.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

func (m *Model) selectItem(it *model.Item) {
	for i, row := range m.list.Items() {
		if li, ok := row.(listItem); ok && li.item == it {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) selected() *model.Item {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return nil
	}
	return li.item
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(max(w-4, 10), max(h-m.chromeHeight(), 3))
}

// chromeHeight counts the rows drawn around the list.
func (m Model) chromeHeight() int {
	// border (2) + header + status line + progress bar + blank
	return 6
}

func (m Model) View() string {
	t := ui.Current()
	done := len(m.ctl.WithCompleted(true))
	pending := m.ctl.Len() - done

	var b strings.Builder
	b.WriteString(ui.Header(done, pending))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
	b.WriteString("\n\n")

	listHeight := max(m.height-m.chromeHeight(), 3)
	if m.mode != modeList {
		listHeight = max(listHeight-4, 1)
	}
	m.list.SetHeight(listHeight)
	b.WriteString(m.list.View())

	if m.mode != modeList {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item (empty title deletes it)"
		}
		bar := lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.BorderColor).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.ti.View()))
	}
	return ui.Panel(b.String())
}

func (m Model) statusLine() string {
	t := ui.Current()
	parts := make([]string, 0, 3)
	for _, s := range []todolist.Status{todolist.All, todolist.Active, todolist.Completed} {
		label := s.String()
		if s == m.ctl.Status() {
			parts = append(parts, t.Accent.Render("["+label+"]"))
			continue
		}
		parts = append(parts, t.Muted.Render(label))
	}
	return strings.Join(parts, " ")
}
