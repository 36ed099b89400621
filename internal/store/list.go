package store

import (
	"fmt"

	"checklist/internal/model"
)

// List is the ordered item collection. It exclusively owns its items; every
// accessor hands out copies.
//
// After any status change the order is partitioned: pending items first, then
// done items, each block in its relative order. New items go to the very front.
type List struct {
	items []model.Item
	gen   *IDGenerator
}

// NewList restores a list from persisted records. Records with an empty id and
// repeated ids (after the first occurrence) are dropped.
func NewList(gen *IDGenerator, items []model.Item) *List {
	l := &List{gen: gen, items: make([]model.Item, 0, len(items))}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		l.items = append(l.items, it)
	}
	return l
}

func (l *List) Len() int { return len(l.items) }

// Snapshot returns a copy of the current order.
func (l *List) Snapshot() []model.Item {
	return append([]model.Item{}, l.items...)
}

// Index returns the position of id, or -1.
func (l *List) Index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) Find(id string) (model.Item, bool) {
	i := l.Index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return l.items[i], true
}

func (l *List) idSet() map[string]bool {
	set := make(map[string]bool, len(l.items))
	for _, it := range l.items {
		set[it.ID] = true
	}
	return set
}

// Add creates a pending item at the front of the list. Callers validate title.
func (l *List) Add(title string) (model.Item, error) {
	id, err := l.gen.Generate(l.idSet())
	if err != nil {
		return model.Item{}, fmt.Errorf("%w: %w", ErrCapacityExhausted, err)
	}
	it := model.Item{ID: id, Title: title, Status: false}
	l.items = append([]model.Item{it}, l.items...)
	return it, nil
}

// UpdateTitle rewrites the title in place. The order is not touched.
func (l *List) UpdateTitle(id, title string) error {
	i := l.Index(id)
	if i < 0 {
		return NotFoundError{ID: id}
	}
	l.items[i].Title = title
	return nil
}

// UpdateStatus writes status and re-establishes the canonical order, returning
// the movements (in pre-mutation positions) that realize it. Writing the
// current status again is allowed and yields no movement on a canonical list.
func (l *List) UpdateStatus(id string, status bool) ([]model.Movement, error) {
	i := l.Index(id)
	if i < 0 {
		return nil, NotFoundError{ID: id}
	}
	l.items[i].Status = status
	next, mvs := Reorder(l.items, i)
	l.items = next
	return mvs, nil
}

// Toggle flips the status of id.
func (l *List) Toggle(id string) (model.Item, []model.Movement, error) {
	it, ok := l.Find(id)
	if !ok {
		return model.Item{}, nil, NotFoundError{ID: id}
	}
	mvs, err := l.UpdateStatus(id, !it.Status)
	if err != nil {
		return model.Item{}, nil, err
	}
	it.Status = !it.Status
	return it, mvs, nil
}

// Remove deletes id and returns the position it occupied.
func (l *List) Remove(id string) (int, error) {
	i := l.Index(id)
	if i < 0 {
		return -1, NotFoundError{ID: id}
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return i, nil
}
