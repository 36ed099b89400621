package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "checklist.sqlite"

// SQLiteBlobs keeps documents in a single kv table of <Dir>/checklist.sqlite.
type SQLiteBlobs struct {
	Dir string

	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteBlobs(dir string) *SQLiteBlobs {
	return &SQLiteBlobs{Dir: dir}
}

func (b *SQLiteBlobs) Path() string {
	return filepath.Join(b.Dir, sqliteFileName)
}

func (b *SQLiteBlobs) open(ctx context.Context) (*sql.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db != nil {
		return b.db, nil
	}
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", b.Path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is locked"
	// when the TUI and a CLI command touch the store at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	b.db = db
	return db, nil
}

func (b *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := b.open(ctx)
	if err != nil {
		return nil, false, err
	}
	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (b *SQLiteBlobs) Put(ctx context.Context, key string, data []byte) error {
	db, err := b.open(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, string(data), time.Now().UTC().UnixMilli())
	return err
}

func (b *SQLiteBlobs) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
