package model

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var timeNow = func() time.Time { return time.Now().UTC() }

// Item is the domain model for a todo entry.
// Title and completion are only changed through methods; Editable is a
// transient flag owned by whichever front end is showing the item.
type Item struct {
	ID       string
	Editable bool

	title     string
	completed bool
}

// Snapshot is a plain copy of an Item for encoders.
type Snapshot struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Done    bool   `json:"done" yaml:"done"`
	Editing bool   `json:"editing,omitempty" yaml:"editing,omitempty"`
}

// New returns a pending item with a trimmed title.
func New(title string) *Item {
	return &Item{
		ID:    newID(),
		title: strings.TrimSpace(title),
	}
}

func (it *Item) Title() string { return it.title }

// SetTitle overwrites the title as given. Callers trim and reject empty input.
func (it *Item) SetTitle(title string) { it.title = title }

func (it *Item) ToggleCompletion() { it.completed = !it.completed }

// Done reports whether the item is completed.
func (it *Item) Done() bool { return it.completed }

func (it *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:      it.ID,
		Title:   it.title,
		Done:    it.completed,
		Editing: it.Editable,
	}
}

func newID() string {
	t := ulid.Timestamp(timeNow())
	id, err := ulid.New(t, ulid.Monotonic(randReader{}, 0))
	if err != nil {
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}
