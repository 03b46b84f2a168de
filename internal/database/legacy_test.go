package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const legacySnapshotJSON = `{
  "categories": [
    {"id": "pr-reviews", "name": "PR-Reviews", "created_at": "2025-01-01T00:00:00.000000000Z"}
  ],
  "sprints": [
    {"id": "s1", "code": "sprint-2", "name": "sprint-2", "start_date": "2025-01-06", "end_date": "2025-01-19", "created_at": "2025-01-06T00:00:00.000000000Z"},
    {"id": "s2", "code": "junk", "name": "Sprint 2", "start_date": "2025-01-20", "end_date": "2025-02-02", "created_at": "2025-01-20T00:00:00.000000000Z"},
    {"id": "s3", "code": "", "name": "", "start_date": "", "created_at": "2025-02-03T00:00:00.000000000Z"}
  ],
  "entries": [
    {"id": "e1", "sprint_id": "s1", "date": "2025-01-07", "category_id": "pr-reviews", "title": "Reviewed auth change", "created_at": "2025-01-07T09:00:00.000000000Z"},
    {"id": "e2", "sprint_id": "s1", "date": "2025-01-08", "category": "deep-work", "title": "Importer rewrite", "details": "tx path", "created_at": "2025-01-08T09:00:00.000000000Z"},
    {"id": "e3", "sprint_id": "s2", "date": "2025-01-21", "category_id": "pr-reviews", "title": "", "created_at": "2025-01-21T09:00:00.000000000Z"},
    {"id": "e4", "sprint_id": "s3", "date": "2025-02-04", "category_id": "pr-reviews", "title": "Orphaned", "created_at": "2025-02-04T09:00:00.000000000Z"},
    {"id": "", "sprint_id": "s1", "date": "2025-01-09", "category_id": "pr-reviews", "title": "No id in the snapshot", "created_at": "2025-01-09T09:00:00.000000000Z"}
  ]
}`

func openWithSnapshot(t *testing.T, ctx context.Context, snapshot string) (*Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "daily-updates.sqlite")
	legacyPath := filepath.Join(dir, "daily-updates-data.json")
	if err := os.WriteFile(legacyPath, []byte(snapshot), 0o644); err != nil {
		t.Fatalf("write snapshot failed: %v", err)
	}

	store, err := Open(ctx, dbPath, legacyPath)
	if err != nil {
		t.Fatalf("Open with snapshot failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, dbPath, legacyPath
}

func TestLegacyImport(t *testing.T) {
	ctx := context.Background()
	store, _, legacyPath := openWithSnapshot(t, ctx, legacySnapshotJSON)

	sprints, err := store.ListSprints(ctx)
	if err != nil {
		t.Fatalf("ListSprints failed: %v", err)
	}
	if len(sprints) != 2 {
		t.Fatalf("expected 2 migrated sprints (s3 lacks a start date), got %d", len(sprints))
	}
	codes := map[string]string{}
	for _, sprint := range sprints {
		codes[sprint.ID] = sprint.Code
	}
	if codes["s1"] != "sprint-2" {
		t.Fatalf("expected s1 to keep sprint-2, got %q", codes["s1"])
	}
	if codes["s2"] != "sprint-3" {
		t.Fatalf("expected s2 normalized to sprint-3, got %q", codes["s2"])
	}

	// e1 and e2 survive for s1, plus the id-less row gets a generated
	// id. e3 is dropped for its empty title, e4 for its dropped sprint.
	entries, err := store.ListEntries(ctx, "s1")
	if err != nil {
		t.Fatalf("ListEntries s1 failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries for s1, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.ID == "" {
			t.Fatalf("expected every migrated entry to carry an id")
		}
	}

	entries, err = store.ListEntries(ctx, "s2")
	if err != nil {
		t.Fatalf("ListEntries s2 failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected the empty-title entry to be skipped, got %d", len(entries))
	}

	// e2 used the legacy "category" alias and named a category the
	// snapshot never declared; it is synthesized with a humanized name.
	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	byID := map[string]string{}
	for _, c := range categories {
		byID[c.ID] = c.Name
	}
	if byID["deep-work"] != "Deep Work" {
		t.Fatalf("expected synthesized Deep Work category, got %q", byID["deep-work"])
	}
	if byID["pr-reviews"] != "PR-Reviews" {
		t.Fatalf("expected snapshot category kept, got %q", byID["pr-reviews"])
	}
	// Snapshot declared categories, so the defaults are not seeded on
	// top of them.
	if _, ok := byID["tasks"]; ok {
		t.Fatalf("expected no default seeding after a snapshot with categories")
	}

	if _, err := os.Stat(legacyPath); err != nil {
		t.Fatalf("expected snapshot file untouched: %v", err)
	}
}

func TestLegacyImportRunsOnlyOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	store, dbPath, legacyPath := openWithSnapshot(t, ctx, legacySnapshotJSON)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Grow the snapshot; a second open must ignore it because the
	// store is populated.
	bigger := `{
  "categories": [
    {"id": "pr-reviews", "name": "PR-Reviews", "created_at": "2025-01-01T00:00:00.000000000Z"},
    {"id": "extra", "name": "Extra", "created_at": "2025-01-01T00:00:00.000000000Z"}
  ],
  "sprints": [],
  "entries": []
}`
	if err := os.WriteFile(legacyPath, []byte(bigger), 0o644); err != nil {
		t.Fatalf("rewrite snapshot failed: %v", err)
	}

	reopened, err := Open(ctx, dbPath, legacyPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	categories, err := reopened.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, c := range categories {
		if c.ID == "extra" {
			t.Fatalf("expected second snapshot to be ignored on a populated store")
		}
	}
}

func TestLegacyImportMissingSnapshotIsFine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, filepath.Join(dir, "daily-updates.sqlite"), filepath.Join(dir, "daily-updates-data.json"))
	if err != nil {
		t.Fatalf("Open without snapshot failed: %v", err)
	}
	defer store.Close()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected default categories only, got %d", len(categories))
	}
}

func TestLegacyImportMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacyPath := filepath.Join(dir, "daily-updates-data.json")
	if err := os.WriteFile(legacyPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write snapshot failed: %v", err)
	}

	_, err := Open(ctx, filepath.Join(dir, "daily-updates.sqlite"), legacyPath)
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected ImportError for malformed snapshot, got %v", err)
	}
}

func TestLegacyImportSnapshotWithoutCategories(t *testing.T) {
	ctx := context.Background()
	snapshot := `{
  "categories": [],
  "sprints": [
    {"id": "s1", "code": "sprint-1", "name": "sprint-1", "start_date": "2025-01-06", "end_date": "2025-01-19", "created_at": "2025-01-06T00:00:00.000000000Z"}
  ],
  "entries": [
    {"id": "e1", "sprint_id": "s1", "date": "2025-01-07", "category_id": "tasks", "title": "Carried over", "created_at": "2025-01-07T09:00:00.000000000Z"}
  ]
}`
	store, _, _ := openWithSnapshot(t, ctx, snapshot)

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected the default set substituted for the empty one, got %d", len(categories))
	}

	entries, err := store.ListEntries(ctx, "s1")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].CategoryID != "tasks" {
		t.Fatalf("expected the entry to land on the default tasks category, got %+v", entries)
	}
}
