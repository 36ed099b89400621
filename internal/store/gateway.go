package store

import (
	"context"
	"errors"
	"fmt"

	"checklist/internal/model"

	"github.com/charmbracelet/log"
)

// Gateway persists the item list as one document under ItemsKey.
type Gateway struct {
	Blobs  Blobs
	Logger *log.Logger
}

func NewGateway(blobs Blobs, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{Blobs: blobs, Logger: logger}
}

// Read returns the persisted items. A document that was never written is an
// empty list; a failed read or a malformed document is an error.
func (g *Gateway) Read(ctx context.Context) ([]model.Item, error) {
	data, ok, err := g.Blobs.Get(ctx, ItemsKey)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	if !ok {
		return []model.Item{}, nil
	}
	return DecodeItems(data)
}

// Load is Read for startup. It never fails: a missing, unreadable or
// malformed document yields an empty list.
func (g *Gateway) Load(ctx context.Context) []model.Item {
	items, err := g.Read(ctx)
	if err != nil {
		g.Logger.Warn("cannot load items; starting empty", "err", err)
		return []model.Item{}
	}
	return items
}

func (g *Gateway) Save(ctx context.Context, items []model.Item) error {
	if g == nil || g.Blobs == nil {
		return errors.New("nil gateway")
	}
	data, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return g.Blobs.Put(ctx, ItemsKey, data)
}

func (g *Gateway) Close() error {
	if g == nil || g.Blobs == nil {
		return nil
	}
	return g.Blobs.Close()
}
