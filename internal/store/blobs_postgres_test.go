package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestPostgresBlobs_SetupFailureIsRetried(t *testing.T) {
	b, err := NewPostgresBlobs("postgres://unused")
	if err != nil {
		t.Fatalf("NewPostgresBlobs: %v", err)
	}
	dial := errors.New("dial tcp: connection refused")
	calls := 0
	b.openDB = func(string, string) (*sql.DB, error) {
		calls++
		return nil, dial
	}

	ctx := context.Background()
	if _, _, err := b.Get(ctx, ItemsKey); !errors.Is(err, dial) {
		t.Fatalf("expected dial error, got %v", err)
	}
	if err := b.Put(ctx, ItemsKey, []byte("[]")); !errors.Is(err, dial) {
		t.Fatalf("expected dial error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected setup to be retried on each call; calls=%d", calls)
	}
}

func TestPostgresBlobs_CloseReleasesHandle(t *testing.T) {
	b, err := NewPostgresBlobs("postgres://unused")
	if err != nil {
		t.Fatalf("NewPostgresBlobs: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close before use: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "handle.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b.db = db
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if b.db != nil {
		t.Fatalf("expected handle to be cleared after Close")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	reopened := false
	b.openDB = func(string, string) (*sql.DB, error) {
		reopened = true
		return nil, errors.New("offline")
	}
	_, _, _ = b.Get(context.Background(), ItemsKey)
	if !reopened {
		t.Fatalf("expected Get after Close to open a new handle")
	}
}
