package database

import (
	"context"
	"path/filepath"
	"testing"
)

// setupTestStore opens a fresh store in a temp directory with no legacy
// snapshot. The default categories are seeded as part of Open.
func setupTestStore(t *testing.T, ctx context.Context) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daily-updates.sqlite")
	store, err := Open(ctx, dbPath, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// insertSprint writes a sprint row directly, bypassing the allocator,
// so tests can stage arbitrary codes and creation orders.
func insertSprint(t *testing.T, ctx context.Context, store *Store, id, code, name, startDate, createdAt string) {
	t.Helper()
	_, err := store.DB.ExecContext(ctx,
		"INSERT INTO sprints (id, code, name, start_date, end_date, created_at) VALUES (?, ?, ?, ?, NULL, ?)",
		id, code, name, startDate, createdAt)
	if err != nil {
		t.Fatalf("insert sprint %s failed: %v", id, err)
	}
}

func firstCategoryID(t *testing.T, ctx context.Context, store *Store) string {
	t.Helper()
	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) == 0 {
		t.Fatalf("expected seeded categories, got none")
	}
	return categories[0].ID
}
