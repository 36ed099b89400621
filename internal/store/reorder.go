package store

import "checklist/internal/model"

// Reorder computes the canonical order of items (pending first, then done,
// each block keeping its relative input order) and the movement that carries
// the item at changedIndex to its new position.
//
// When the canonical order equals the input order no movement is returned and
// items is returned unchanged. At most one movement is ever returned: only one
// item changes status per call. A changedIndex that is not part of the input
// yields the new order with no movement.
func Reorder(items []model.Item, changedIndex int) ([]model.Item, []model.Movement) {
	pending := make([]model.Item, 0, len(items))
	pendingIdx := make([]int, 0, len(items))
	done := make([]model.Item, 0, len(items))
	doneIdx := make([]int, 0, len(items))

	for i, it := range items {
		if it.Status {
			done = append(done, it)
			doneIdx = append(doneIdx, i)
		} else {
			pending = append(pending, it)
			pendingIdx = append(pendingIdx, i)
		}
	}

	// origIndex[i] is the input index of the item now at position i.
	origIndex := append(pendingIdx, doneIdx...)

	moved := false
	for i := range origIndex {
		if origIndex[i] != i {
			moved = true
			break
		}
	}
	if !moved {
		return items, nil
	}

	next := append(pending, done...)
	for to, from := range origIndex {
		if from == changedIndex {
			return next, []model.Movement{{From: changedIndex, To: to}}
		}
	}
	return next, nil
}

// ApplyMovement relocates one row of a rendered list.
//
// The row at mv.From is removed. If mv.To is at or past the last position the
// row is appended; otherwise it is inserted before the row that occupied mv.To
// (mv.To+1 when moving forward) before the removal. The row therefore lands at
// position min(mv.To, len(rows)-1). An out-of-range mv.From leaves rows as is.
//
// rows is not modified; a new slice is returned.
func ApplyMovement[T any](rows []T, mv model.Movement) []T {
	out := append([]T(nil), rows...)
	if mv.From < 0 || mv.From >= len(out) {
		return out
	}
	last := len(out) - 1
	row := out[mv.From]

	if mv.To >= last {
		out = append(out[:mv.From], out[mv.From+1:]...)
		return append(out, row)
	}

	before := mv.To
	if mv.To > mv.From {
		before = mv.To + 1
	}
	if before == mv.From {
		return out
	}
	if before < 0 {
		before = 0
	}

	out = append(out[:mv.From], out[mv.From+1:]...)
	if before > mv.From {
		before--
	}
	out = append(out, row)
	copy(out[before+1:], out[before:len(out)-1])
	out[before] = row
	return out
}

// ApplyMovements applies movements in order.
func ApplyMovements[T any](rows []T, mvs []model.Movement) []T {
	out := append([]T(nil), rows...)
	for _, mv := range mvs {
		out = ApplyMovement(out, mv)
	}
	return out
}
