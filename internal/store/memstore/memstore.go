package memstore

import (
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// In-memory storage for one session. Not safe for concurrent use;
// front ends serialize access.

var _ store.Store = (*Store)(nil)

type Store struct {
	items []*model.Item
}

func New(items ...*model.Item) *Store {
	s := &Store{items: make([]*model.Item, 0, len(items))}
	s.items = append(s.items, items...)
	return s
}

func (s *Store) Add(it *model.Item) {
	s.items = append(s.items, it)
}

func (s *Store) List() []*model.Item { return s.items }

func (s *Store) WithCompleted(completed bool) []*model.Item {
	out := make([]*model.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Done() == completed {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) Remove(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	copy(s.items[index:], s.items[index+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

func (s *Store) IndexOf(it *model.Item) int {
	for i, cur := range s.items {
		if cur == it {
			return i
		}
	}
	return -1
}

func (s *Store) Len() int { return len(s.items) }
