// Package todolist mediates every change to the session's to-do list.
//
// Front ends translate UI events (submit, click, blur, escape) into calls on
// a Controller. The Controller is not safe for concurrent use; callers
// handle one event at a time.
package todolist

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/store/memstore"
)

type Controller struct {
	store  store.Store
	status Status
	log    *log.Logger
}

type Option func(*Controller)

func WithStore(s store.Store) Option {
	return func(c *Controller) { c.store = s }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New returns a controller over an empty in-memory store unless WithStore is given.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = memstore.New()
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	return c
}

// Add appends a new item. Input is not validated here; see Submit.
func (c *Controller) Add(title string) *model.Item {
	it := model.New(title)
	c.store.Add(it)
	c.log.Debug("add", "id", it.ID, "title", it.Title(), "len", c.store.Len())
	return it
}

// Submit handles the new-item input box: it trims the input and adds an
// item only when something is left.
func (c *Controller) Submit(input string) (*model.Item, bool) {
	title := strings.TrimSpace(input)
	if title == "" {
		return nil, false
	}
	return c.Add(title), true
}

// List returns the live collection in insertion order.
func (c *Controller) List() []*model.Item { return c.store.List() }

func (c *Controller) Len() int { return c.store.Len() }

func (c *Controller) WithCompleted(completed bool) []*model.Item {
	return c.store.WithCompleted(completed)
}

// Remaining lists the items still to do.
func (c *Controller) Remaining() []*model.Item { return c.store.WithCompleted(false) }

// Remove deletes the item at index; -1 and other out-of-range indexes do nothing.
func (c *Controller) Remove(index int) {
	before := c.store.Len()
	c.store.Remove(index)
	c.log.Debug("remove", "index", index, "removed", before != c.store.Len())
}

func (c *Controller) IndexOf(it *model.Item) int { return c.store.IndexOf(it) }

// Find looks an item up by id. The index is -1 when nothing matches.
func (c *Controller) Find(id string) (*model.Item, int) {
	for i, it := range c.store.List() {
		if it.ID == id {
			return it, i
		}
	}
	return nil, -1
}

func (c *Controller) Toggle(it *model.Item) {
	it.ToggleCompletion()
	c.log.Debug("toggle", "id", it.ID, "done", it.Done())
}

// Edit puts the item in inline-edit mode.
func (c *Controller) Edit(it *model.Item) {
	it.Editable = true
	c.log.Debug("edit", "id", it.ID)
}

// Update commits an inline edit. A title that trims to empty deletes the
// item. Items that are not being edited are left alone.
func (c *Controller) Update(it *model.Item, newTitle string) {
	if !it.Editable {
		return
	}
	title := strings.TrimSpace(newTitle)
	if title != "" {
		it.SetTitle(title)
		it.Editable = false
		c.log.Debug("update", "id", it.ID, "title", title)
		return
	}
	if idx := c.store.IndexOf(it); idx != -1 {
		c.Remove(idx)
	}
}

// CancelEditing leaves edit mode without touching the title.
func (c *Controller) CancelEditing(it *model.Item) {
	it.Editable = false
	c.log.Debug("cancel", "id", it.ID)
}

func (c *Controller) Status() Status { return c.status }

func (c *Controller) SetStatus(s Status) { c.status = s }

// Visible returns the items matching the current status, in order.
func (c *Controller) Visible() []*model.Item {
	switch c.status {
	case Active:
		return c.store.WithCompleted(false)
	case Completed:
		return c.store.WithCompleted(true)
	}
	return c.store.List()
}
