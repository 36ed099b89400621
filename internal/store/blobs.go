package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ItemsKey is the well-known key the item list is persisted under.
const ItemsKey = "items"

var ErrUnknownBackend = errors.New("unknown storage backend")

// Blobs is a durable key-value store of opaque documents.
type Blobs interface {
	// Get returns ok=false when key has never been written.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

const (
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// BlobsConfig selects and configures a Blobs backend.
type BlobsConfig struct {
	Backend string // sqlite (default) | file | postgres
	Dir     string // sqlite and file
	DSN     string // postgres
}

func OpenBlobs(cfg BlobsConfig) (Blobs, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendSQLite:
		if strings.TrimSpace(cfg.Dir) == "" {
			return nil, errors.New("sqlite backend: missing dir")
		}
		return NewSQLiteBlobs(cfg.Dir), nil
	case BackendFile, "json":
		if strings.TrimSpace(cfg.Dir) == "" {
			return nil, errors.New("file backend: missing dir")
		}
		return NewFileBlobs(cfg.Dir), nil
	case BackendPostgres, "postgresql":
		b, err := NewPostgresBlobs(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
