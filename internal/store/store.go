// Package store defines the ordered collection the list controller works on.
package store

import "github.com/idilsaglam/todolist/internal/model"

// Store holds items in insertion order, addressable by index.
type Store interface {
	Add(it *model.Item)
	// List returns the live backing sequence.
	List() []*model.Item
	WithCompleted(completed bool) []*model.Item
	// Remove deletes the item at index. Out-of-range indexes are ignored.
	Remove(index int)
	// IndexOf returns -1 when it is not in the store.
	IndexOf(it *model.Item) int
	Len() int
}
