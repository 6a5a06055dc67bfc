package seedfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/model"
)

// YAML seed files pre-fill a session's list. Nothing is written back:
// Write only dumps the current list for the user to copy.
//
//	- title: Buy milk
//	- title: Call mom
//	  done: true

type entry struct {
	Title string `yaml:"title"`
	Done  bool   `yaml:"done,omitempty"`
}

// Load reads seed entries from path. Entries with an empty title are skipped.
func Load(path string) ([]*model.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]*model.Item, error) {
	var entries []entry
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	items := make([]*model.Item, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		it := model.New(e.Title)
		if e.Done {
			it.ToggleCompletion()
		}
		items = append(items, it)
	}
	return items, nil
}

// Write encodes items in the seed format.
func Write(w io.Writer, items []*model.Item) error {
	entries := make([]entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry{Title: it.Title(), Done: it.Done()})
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
