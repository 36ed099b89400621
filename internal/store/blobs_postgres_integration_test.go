package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"checklist/internal/model"
)

func TestPostgresBlobs_RoundTrip(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("CHECKLIST_TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("set CHECKLIST_TEST_POSTGRES_DSN to run postgres integration tests")
	}

	b, err := NewPostgresBlobs(dsn)
	if err != nil {
		t.Fatalf("NewPostgresBlobs: %v", err)
	}
	b.tableName = fmt.Sprintf("checklist_kv_it_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		if b.db != nil {
			_, _ = b.db.Exec("DROP TABLE IF EXISTS " + postgresQuoteIdentifier(b.tableName))
		}
		_ = b.Close()
	})

	ctx := context.Background()
	g := NewGateway(b, quietLogger())
	if got := g.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty initial load, got %+v", got)
	}
	want := []model.Item{{ID: "1", Title: "A"}, {ID: "2", Title: "B", Status: true}}
	if err := g.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want[0].Title = "A2"
	if err := g.Save(ctx, want); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got := g.Load(ctx)
	if len(got) != 2 || got[0].Title != "A2" || !got[1].Status {
		t.Fatalf("unexpected items: %+v", got)
	}
}
