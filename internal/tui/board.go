package tui

import (
	"checklist/internal/model"
	"checklist/internal/store"

	"github.com/charmbracelet/bubbles/list"
)

// board is the TUI render adapter. It owns the visual rows only; the session
// drives it and it never reaches back into the store.
type board struct {
	list list.Model
}

func newBoard() *board {
	return &board{list: newList([]list.Item{})}
}

func (b *board) RenderAll(items []model.Item) {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{item: it})
	}
	idx := b.list.Index()
	b.list.SetItems(rows)
	b.selectIndex(idx)
}

// ApplyMovement relocates one row. The cursor keeps its position so the next
// row slides under it after an item is checked off.
func (b *board) ApplyMovement(mv model.Movement) {
	idx := b.list.Index()
	b.list.SetItems(store.ApplyMovement(b.list.Items(), mv))
	b.selectIndex(idx)
}

func (b *board) PatchRow(item model.Item) {
	for i, li := range b.list.Items() {
		if r, ok := li.(row); ok && r.item.ID == item.ID {
			b.list.SetItem(i, row{item: item})
			return
		}
	}
}

func (b *board) selectIndex(i int) {
	n := len(b.list.Items())
	if n == 0 {
		return
	}
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	b.list.Select(i)
}

func (b *board) selected() (model.Item, bool) {
	r, ok := b.list.SelectedItem().(row)
	if !ok {
		return model.Item{}, false
	}
	return r.item, true
}

func (b *board) ids() []string {
	out := make([]string, 0, len(b.list.Items()))
	for _, li := range b.list.Items() {
		if r, ok := li.(row); ok {
			out = append(out, r.item.ID)
		}
	}
	return out
}

func (b *board) doneCount() int {
	n := 0
	for _, li := range b.list.Items() {
		if r, ok := li.(row); ok && r.item.Done() {
			n++
		}
	}
	return n
}
