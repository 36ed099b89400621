package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

const (
	postgresTableName        = "checklist_kv"
	postgresOperationTimeout = 5 * time.Second
)

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// PostgresBlobs keeps documents in a Postgres table keyed by document key.
type PostgresBlobs struct {
	dsn       string
	tableName string
	openDB    sqlOpenFunc

	mu sync.Mutex
	db *sql.DB
}

func NewPostgresBlobs(dsn string) (*PostgresBlobs, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres backend: missing dsn")
	}
	return &PostgresBlobs{
		dsn:       dsn,
		tableName: postgresTableName,
		openDB:    sql.Open,
	}, nil
}

// ready returns the shared handle, opening it and creating the table on first
// use. A failed setup is retried by the next call.
func (b *PostgresBlobs) ready() (*sql.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db != nil {
		return b.db, nil
	}
	db, err := b.openDB("postgres", b.dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), postgresOperationTimeout)
	defer cancel()
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, postgresQuoteIdentifier(b.tableName))
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		_ = db.Close()
		return nil, err
	}
	b.db = db
	return db, nil
}

func (b *PostgresBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := b.ready()
	if err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT v FROM %s WHERE k = $1", postgresQuoteIdentifier(b.tableName))
	var v string
	err = db.QueryRowContext(ctx, query, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (b *PostgresBlobs) Put(ctx context.Context, key string, data []byte) error {
	db, err := b.ready()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	stmt := fmt.Sprintf(`INSERT INTO %s (k, v, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = now()`, postgresQuoteIdentifier(b.tableName))
	_, err = db.ExecContext(ctx, stmt, key, string(data))
	return err
}

// Close releases the handle. A later Get or Put opens a new one.
func (b *PostgresBlobs) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

func postgresQuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
