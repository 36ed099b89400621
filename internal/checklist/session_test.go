package checklist

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"checklist/internal/logging"
	"checklist/internal/model"
	"checklist/internal/render"
	"checklist/internal/store"
)

type memGateway struct {
	items   []model.Item
	saves   int
	saveErr error
}

func (g *memGateway) Load(context.Context) []model.Item {
	return append([]model.Item{}, g.items...)
}

func (g *memGateway) Read(ctx context.Context) ([]model.Item, error) {
	return g.Load(ctx), nil
}

func (g *memGateway) Save(_ context.Context, items []model.Item) error {
	g.saves++
	if g.saveErr != nil {
		return g.saveErr
	}
	g.items = append([]model.Item{}, items...)
	return nil
}

// recorder logs renderer calls and keeps a Rows mirror to check that the view
// ends up showing the store order.
type recorder struct {
	calls []string
	rows  *render.Rows
}

func newRecorder() *recorder { return &recorder{rows: render.NewRows()} }

func (r *recorder) RenderAll(items []model.Item) {
	r.calls = append(r.calls, "all")
	r.rows.RenderAll(items)
}

func (r *recorder) ApplyMovement(mv model.Movement) {
	r.calls = append(r.calls, "move")
	r.rows.ApplyMovement(mv)
}

func (r *recorder) PatchRow(item model.Item) {
	r.calls = append(r.calls, "patch:"+item.ID)
	r.rows.PatchRow(item)
}

func openTestSession(t *testing.T, gw *memGateway) (*Session, *recorder) {
	t.Helper()
	rec := newRecorder()
	s := Open(context.Background(), Options{
		Gateway:  gw,
		IDs:      store.NewIDGenerator(0),
		Renderer: rec,
		Logger:   logging.Discard(),
	})
	return s, rec
}

func TestSession_OpenRendersPersistedItems(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}}}
	_, rec := openTestSession(t, gw)
	if len(rec.calls) != 1 || rec.calls[0] != "all" {
		t.Fatalf("expected one RenderAll on open; got %v", rec.calls)
	}
	if got := rec.rows.IDs(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected rows %v", got)
	}
}

func TestSession_AddValidatesTitle(t *testing.T) {
	gw := &memGateway{}
	s, _ := openTestSession(t, gw)
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(context.Background(), title); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("Add(%q): expected ErrEmptyTitle, got %v", title, err)
		}
	}
	if gw.saves != 0 {
		t.Fatalf("rejected adds must not save")
	}
}

func TestSession_AddTrimsAndPersists(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A", Status: true}}}
	s, rec := openTestSession(t, gw)

	it, err := s.Add(context.Background(), "  B  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if it.Title != "B" {
		t.Fatalf("expected trimmed title, got %q", it.Title)
	}
	if gw.saves != 1 || len(gw.items) != 2 || gw.items[0].ID != it.ID {
		t.Fatalf("expected saved [B, A]; got %+v", gw.items)
	}
	if got := rec.rows.IDs(); got[0] != it.ID || got[1] != "a" {
		t.Fatalf("expected rendered [B, A]; got %v", got)
	}
}

func TestSession_AddCapacityExhausted(t *testing.T) {
	gw := &memGateway{}
	s := Open(context.Background(), Options{
		Gateway: gw,
		IDs:     &store.IDGenerator{MaxAttempts: 1, Float: func() float64 { return 0 }},
		Logger:  logging.Discard(),
	})
	if _, err := s.Add(context.Background(), "first"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	before := s.Items()
	_, err := s.Add(context.Background(), "second")
	if !errors.Is(err, store.ErrCapacityExhausted) {
		t.Fatalf("expected ErrCapacityExhausted, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Fatalf("store changed after rejected add")
	}
	if gw.saves != 1 {
		t.Fatalf("expected only the first add to save; saves=%d", gw.saves)
	}
}

func TestSession_ToggleAppliesMovementToView(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}}
	s, rec := openTestSession(t, gw)
	rec.calls = nil

	res, err := s.Toggle(context.Background(), "a")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !res.Changed || !res.Item.Status {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Movements) != 1 || res.Movements[0] != (model.Movement{From: 0, To: 2}) {
		t.Fatalf("expected 0->2; got %v", res.Movements)
	}
	if got := strings.Join(rec.calls, ","); got != "move,patch:a" {
		t.Fatalf("expected move then patch; got %s", got)
	}
	if got := strings.Join(rec.rows.IDs(), ","); got != "b,c,a" {
		t.Fatalf("view out of sync: %s", got)
	}
	if got := itemIDs(gw.items); strings.Join(got, ",") != "b,c,a" || !gw.items[2].Status {
		t.Fatalf("unexpected persisted state %+v", gw.items)
	}
}

func TestSession_RedundantStatusIsIdempotent(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B", Status: true}}}
	s, _ := openTestSession(t, gw)
	before := s.Items()

	res, err := s.SetStatus(context.Background(), "b", true)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if res.Changed || len(res.Movements) != 0 {
		t.Fatalf("expected no change and no movement; got %+v", res)
	}
	if res.Movements == nil {
		t.Fatalf("expected empty, non-nil movement list for stable JSON output")
	}
	if !reflect.DeepEqual(before, s.Items()) {
		t.Fatalf("order changed")
	}
}

func TestSession_NonCanonicalRestoreRepaints(t *testing.T) {
	gw := &memGateway{items: []model.Item{
		{ID: "A", Title: "A"},
		{ID: "B", Title: "B", Status: true},
		{ID: "C", Title: "C"},
	}}
	s, rec := openTestSession(t, gw)
	rec.calls = nil

	if _, err := s.Toggle(context.Background(), "A"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := strings.Join(itemIDs(s.Items()), ","); got != "C,A,B" {
		t.Fatalf("expected C,A,B; got %s", got)
	}
	if rec.calls[len(rec.calls)-1] != "all" {
		t.Fatalf("expected fallback RenderAll; calls=%v", rec.calls)
	}
	if got := strings.Join(rec.rows.IDs(), ","); got != "C,A,B" {
		t.Fatalf("view out of sync: %s", got)
	}
}

func TestSession_RenameMissingLeavesStateUnchanged(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}}}
	s, rec := openTestSession(t, gw)
	rec.calls = nil
	before := s.Items()

	_, err := s.Rename(context.Background(), "missing", "New")
	if !store.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Items()) || gw.saves != 0 || len(rec.calls) != 0 {
		t.Fatalf("failed rename must not touch state, view or storage")
	}
}

func TestSession_RenamePatchesRow(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}
	s, rec := openTestSession(t, gw)
	rec.calls = nil

	it, err := s.Rename(context.Background(), "b", " Bee ")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if it.Title != "Bee" {
		t.Fatalf("expected Bee, got %q", it.Title)
	}
	if got := strings.Join(rec.calls, ","); got != "patch:b" {
		t.Fatalf("expected a single patch; got %s", got)
	}
	if _, err := s.Rename(context.Background(), "b", "  "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestSession_SaveFailureKeepsMemoryState(t *testing.T) {
	gw := &memGateway{saveErr: errors.New("disk full")}
	s, _ := openTestSession(t, gw)

	it, err := s.Add(context.Background(), "A")
	if err != nil {
		t.Fatalf("Add must succeed even when saving fails: %v", err)
	}
	if _, err := s.Toggle(context.Background(), it.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || !items[0].Status {
		t.Fatalf("expected in-memory state to be kept; got %+v", items)
	}
}

func TestSession_Remove(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}
	s, rec := openTestSession(t, gw)

	res, err := s.Remove(context.Background(), "a")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Index != 0 || res.Item.ID != "a" {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := rec.rows.IDs(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected rows %v", got)
	}
	if _, err := s.Remove(context.Background(), "a"); !store.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSession_ReloadOnlyRepaintsOnChange(t *testing.T) {
	gw := &memGateway{items: []model.Item{{ID: "a", Title: "A"}}}
	s, rec := openTestSession(t, gw)
	rec.calls = nil

	if s.Reload(context.Background()) {
		t.Fatalf("expected no reload when nothing changed")
	}
	gw.items = append(gw.items, model.Item{ID: "z", Title: "Z", Status: true})
	if !s.Reload(context.Background()) {
		t.Fatalf("expected reload after external change")
	}
	if len(rec.calls) != 1 || rec.calls[0] != "all" {
		t.Fatalf("expected one repaint; got %v", rec.calls)
	}
	if len(s.Items()) != 2 {
		t.Fatalf("expected 2 items after reload")
	}
}

// flakyBlobs serves from memory until fail is set, then every Get errors.
type flakyBlobs struct {
	data map[string][]byte
	fail bool
}

func (b *flakyBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	if b.fail {
		return nil, false, errors.New("database is locked")
	}
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *flakyBlobs) Put(_ context.Context, key string, data []byte) error {
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func (b *flakyBlobs) Close() error { return nil }

func TestSession_ReloadKeepsMemoryWhenReadFails(t *testing.T) {
	ctx := context.Background()
	blobs := &flakyBlobs{data: map[string][]byte{}}
	gw := store.NewGateway(blobs, logging.Discard())
	rec := newRecorder()
	s := Open(ctx, Options{Gateway: gw, Renderer: rec, Logger: logging.Discard()})

	if _, err := s.Add(ctx, "keep me"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec.calls = nil

	blobs.fail = true
	if s.Reload(ctx) {
		t.Fatalf("a failed read must not count as a reload")
	}
	if len(s.Items()) != 1 || len(rec.calls) != 0 {
		t.Fatalf("failed read changed state: items=%+v calls=%v", s.Items(), rec.calls)
	}

	blobs.fail = false
	if _, err := s.Add(ctx, "next"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	persisted, err := store.DecodeItems(blobs.data[store.ItemsKey])
	if err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	if got := strings.Join(titles(persisted), ","); got != "next,keep me" {
		t.Fatalf("expected both items persisted; got %s", got)
	}
}

func titles(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestSession_ReplaceDropsDuplicates(t *testing.T) {
	gw := &memGateway{}
	s, _ := openTestSession(t, gw)

	got := s.Replace(context.Background(), []model.Item{{ID: "x", Title: "X"}, {ID: "x", Title: "dup"}})
	if len(got) != 1 || got[0].Title != "X" {
		t.Fatalf("unexpected replace result %+v", got)
	}
	if len(gw.items) != 1 {
		t.Fatalf("expected replace to persist")
	}
}
