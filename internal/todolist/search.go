package todolist

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/idilsaglam/todolist/internal/model"
)

// Search returns items whose title fuzzy-matches query, in list order.
func (c *Controller) Search(query string) []*model.Item {
	return Filter(c.store.List(), query)
}

// Filter narrows items to fuzzy title matches. An empty query keeps everything.
func Filter(items []*model.Item, query string) []*model.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	out := make([]*model.Item, 0, len(items))
	for _, it := range items {
		if fuzzy.MatchNormalizedFold(query, it.Title()) {
			out = append(out, it)
		}
	}
	return out
}
