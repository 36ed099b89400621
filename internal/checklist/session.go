// Package checklist is the boundary between user intents and the item store.
//
// A Session validates each intent, applies it to the store, tells the attached
// renderer what changed and persists the new state. Every intent runs to
// completion under one lock, so a Session can be shared by concurrent callers
// (HTTP handlers) while the store itself stays single-writer.
package checklist

import (
	"context"
	"errors"
	"strings"
	"sync"

	"checklist/internal/model"
	"checklist/internal/render"
	"checklist/internal/store"

	"github.com/charmbracelet/log"
)

var ErrEmptyTitle = errors.New("title must not be empty")

// Persister is the persistence gateway a Session saves through.
type Persister interface {
	// Load is used at startup and never fails.
	Load(ctx context.Context) []model.Item
	// Read reports failures so a running session can keep what it has.
	Read(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
}

type Options struct {
	Gateway  Persister
	IDs      *store.IDGenerator
	Renderer render.Renderer
	Logger   *log.Logger
}

type Session struct {
	mu   sync.Mutex
	list *store.List
	gw   Persister
	ids  *store.IDGenerator
	r    render.Renderer
	log  *log.Logger
}

// StatusResult describes a status change. Movements are positions in the
// order before the change.
type StatusResult struct {
	Item      model.Item       `json:"item"`
	Changed   bool             `json:"changed"`
	Movements []model.Movement `json:"movements"`
}

type RemoveResult struct {
	Item  model.Item `json:"item"`
	Index int        `json:"index"`
}

// Open restores the persisted list and paints it on the renderer.
func Open(ctx context.Context, opts Options) *Session {
	s := &Session{
		gw:  opts.Gateway,
		ids: opts.IDs,
		r:   opts.Renderer,
		log: opts.Logger,
	}
	if s.ids == nil {
		s.ids = store.NewIDGenerator(0)
	}
	if s.r == nil {
		s.r = render.Nop{}
	}
	if s.log == nil {
		s.log = log.Default()
	}
	var items []model.Item
	if s.gw != nil {
		items = s.gw.Load(ctx)
	}
	s.list = store.NewList(s.ids, items)
	s.r.RenderAll(s.list.Snapshot())
	return s
}

// Attach replaces the renderer and paints the current list on it.
func (s *Session) Attach(r render.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		r = render.Nop{}
	}
	s.r = r
	s.r.RenderAll(s.list.Snapshot())
}

func (s *Session) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Snapshot()
}

func (s *Session) Find(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Find(strings.TrimSpace(id))
}

func (s *Session) Add(ctx context.Context, title string) (model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.list.Add(title)
	if err != nil {
		s.log.Warn("add rejected", "title", title, "err", err)
		return model.Item{}, err
	}
	s.r.RenderAll(s.list.Snapshot())
	s.persist(ctx)
	return it, nil
}

func (s *Session) Rename(ctx context.Context, id, title string) (model.Item, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.list.UpdateTitle(id, title); err != nil {
		return model.Item{}, err
	}
	it, _ := s.list.Find(id)
	s.r.PatchRow(it)
	s.persist(ctx)
	return it, nil
}

func (s *Session) Toggle(ctx context.Context, id string) (StatusResult, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.list.Find(id)
	if !ok {
		return StatusResult{}, store.NotFoundError{ID: id}
	}
	return s.setStatusLocked(ctx, it, !it.Status)
}

func (s *Session) SetStatus(ctx context.Context, id string, done bool) (StatusResult, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.list.Find(id)
	if !ok {
		return StatusResult{}, store.NotFoundError{ID: id}
	}
	return s.setStatusLocked(ctx, it, done)
}

func (s *Session) setStatusLocked(ctx context.Context, it model.Item, done bool) (StatusResult, error) {
	prev := itemIDs(s.list.Snapshot())
	mvs, err := s.list.UpdateStatus(it.ID, done)
	if err != nil {
		return StatusResult{}, err
	}
	cur := s.list.Snapshot()
	updated, _ := s.list.Find(it.ID)

	for _, mv := range mvs {
		s.r.ApplyMovement(mv)
	}
	s.r.PatchRow(updated)
	// A list restored out of canonical order can need more than the single
	// movement; repaint when the movements do not reproduce it.
	if !equalIDs(store.ApplyMovements(prev, mvs), itemIDs(cur)) {
		s.log.Debug("movements do not reproduce order; repainting", "id", it.ID)
		s.r.RenderAll(cur)
	}
	s.persist(ctx)

	if mvs == nil {
		mvs = []model.Movement{}
	}
	return StatusResult{Item: updated, Changed: it.Status != done, Movements: mvs}, nil
}

func (s *Session) Remove(ctx context.Context, id string) (RemoveResult, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.list.Find(id)
	if !ok {
		return RemoveResult{}, store.NotFoundError{ID: id}
	}
	i, err := s.list.Remove(id)
	if err != nil {
		return RemoveResult{}, err
	}
	s.r.RenderAll(s.list.Snapshot())
	s.persist(ctx)
	return RemoveResult{Item: it, Index: i}, nil
}

// Replace swaps the whole list (import) and persists it.
func (s *Session) Replace(ctx context.Context, items []model.Item) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = store.NewList(s.ids, items)
	snap := s.list.Snapshot()
	s.r.RenderAll(snap)
	s.persist(ctx)
	return snap
}

// Reload re-reads persisted state (e.g. after another process wrote it) and
// repaints when it differs from memory. It never saves. When the read fails
// the in-memory list is kept.
func (s *Session) Reload(ctx context.Context) bool {
	if s.gw == nil {
		return false
	}
	items, err := s.gw.Read(ctx)
	if err != nil {
		s.log.Warn("reload failed; keeping in-memory state", "err", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := store.NewList(s.ids, items)
	if equalItems(next.Snapshot(), s.list.Snapshot()) {
		return false
	}
	s.list = next
	s.r.RenderAll(s.list.Snapshot())
	return true
}

// persist saves the current list. A failed save is logged only: memory stays
// the source of truth for the rest of the session.
func (s *Session) persist(ctx context.Context) {
	snap := s.list.Snapshot()
	if s.gw != nil {
		if err := s.gw.Save(ctx, snap); err != nil {
			s.log.Error("save failed; keeping in-memory state", "err", err)
		}
	}
	if s.log.GetLevel() <= log.DebugLevel {
		for i, it := range snap {
			s.log.Debug("item", "pos", i, "id", it.ID, "title", it.Title, "status", it.Status)
		}
	}
}

func itemIDs(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalItems(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
