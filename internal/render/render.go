// Package render defines how views consume item snapshots and movements.
//
// A Renderer never mutates the item store and keeps no reference into it;
// rows are addressed by item id.
package render

import (
	"sync"

	"checklist/internal/model"
	"checklist/internal/store"
)

type Renderer interface {
	// RenderAll rebuilds the view from a full snapshot.
	RenderAll(items []model.Item)
	// ApplyMovement relocates one existing row (see store.ApplyMovement).
	ApplyMovement(mv model.Movement)
	// PatchRow redraws the row whose id matches item.ID in place.
	PatchRow(item model.Item)
}

type Nop struct{}

func (Nop) RenderAll([]model.Item)       {}
func (Nop) ApplyMovement(model.Movement) {}
func (Nop) PatchRow(model.Item)          {}

// Multi fans every call out to each renderer in order.
type Multi []Renderer

func (m Multi) RenderAll(items []model.Item) {
	for _, r := range m {
		r.RenderAll(items)
	}
}

func (m Multi) ApplyMovement(mv model.Movement) {
	for _, r := range m {
		r.ApplyMovement(mv)
	}
}

func (m Multi) PatchRow(item model.Item) {
	for _, r := range m {
		r.PatchRow(item)
	}
}

// Rows is a view model: the id order a view currently shows plus the last
// painted version of each row. It is safe for concurrent use.
type Rows struct {
	mu    sync.Mutex
	order []string
	byID  map[string]model.Item
}

func NewRows() *Rows {
	return &Rows{byID: map[string]model.Item{}}
}

func (r *Rows) RenderAll(items []model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = make([]string, 0, len(items))
	r.byID = make(map[string]model.Item, len(items))
	for _, it := range items {
		r.order = append(r.order, it.ID)
		r.byID[it.ID] = it
	}
}

func (r *Rows) ApplyMovement(mv model.Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = store.ApplyMovement(r.order, mv)
}

// PatchRow ignores ids the view does not show.
func (r *Rows) PatchRow(item model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[item.ID]; ok {
		r.byID[item.ID] = item
	}
}

func (r *Rows) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.order...)
}

// Items returns the rows in view order.
func (r *Rows) Items() []model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
