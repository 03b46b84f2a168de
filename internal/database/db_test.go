package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSeedsDefaultCategories(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 default categories, got %d", len(categories))
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	for id, want := range map[string]string{
		"pr-reviews": "PR-Reviews",
		"meeting":    "Meeting",
		"tasks":      "Tasks",
	} {
		if names[id] != want {
			t.Fatalf("expected category %s to be named %q, got %q", id, want, names[id])
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "daily-updates.sqlite")

	store, err := Open(ctx, dbPath, "")
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if _, err := store.CreateCategory(ctx, "Incidents"); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(ctx, dbPath, "")
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer reopened.Close()

	categories, err := reopened.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("expected 4 categories after reopen, got %d", len(categories))
	}
	if reopened.Path() != dbPath {
		t.Fatalf("expected path %s, got %s", dbPath, reopened.Path())
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "daily-updates.sqlite")

	store, err := Open(ctx, dbPath, "")
	if err != nil {
		t.Fatalf("Open with missing parent dirs failed: %v", err)
	}
	store.Close()
}
