package render

import (
	"strings"
	"testing"

	"checklist/internal/model"
)

func TestRows_AppliesMovementsAndPatches(t *testing.T) {
	r := NewRows()
	r.RenderAll([]model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}})

	r.ApplyMovement(model.Movement{From: 0, To: 2})
	if got := strings.Join(r.IDs(), ","); got != "b,c,a" {
		t.Fatalf("expected b,c,a; got %s", got)
	}

	r.PatchRow(model.Item{ID: "a", Title: "A", Status: true})
	r.PatchRow(model.Item{ID: "zzz", Title: "unknown"})
	items := r.Items()
	if len(items) != 3 {
		t.Fatalf("patch of unknown id must not add a row; got %+v", items)
	}
	if !items[2].Status {
		t.Fatalf("expected patched row to be done: %+v", items[2])
	}
}

type countingRenderer struct{ all, moves, patches int }

func (c *countingRenderer) RenderAll([]model.Item)       { c.all++ }
func (c *countingRenderer) ApplyMovement(model.Movement) { c.moves++ }
func (c *countingRenderer) PatchRow(model.Item)          { c.patches++ }

func TestMulti_FansOut(t *testing.T) {
	a, b := &countingRenderer{}, &countingRenderer{}
	m := Multi{a, Nop{}, b}
	m.RenderAll(nil)
	m.ApplyMovement(model.Movement{})
	m.PatchRow(model.Item{})
	for _, c := range []*countingRenderer{a, b} {
		if c.all != 1 || c.moves != 1 || c.patches != 1 {
			t.Fatalf("unexpected counts %+v", *c)
		}
	}
}
