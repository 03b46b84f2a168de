package database

import (
	"context"
	"errors"
	"testing"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	category, err := store.CreateCategory(ctx, "  Deep Work  ")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if category.Name != "Deep Work" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if category.ID == "" || category.CreatedAt == "" {
		t.Fatalf("expected generated id and timestamp, got %+v", category)
	}

	var validation *ValidationError
	if _, err := store.CreateCategory(ctx, "   "); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for blank name, got %v", err)
	}
}

func TestCreateCategoryRejectsCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	var conflict *ConflictError
	if _, err := store.CreateCategory(ctx, "TASKS"); !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for duplicate of seeded Tasks, got %v", err)
	}
}

func TestRenameCategory(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	renamed, err := store.RenameCategory(ctx, "tasks", "Engineering Tasks")
	if err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if renamed.ID != "tasks" || renamed.Name != "Engineering Tasks" {
		t.Fatalf("unexpected renamed category: %+v", renamed)
	}

	// Renaming to its own current name is allowed; the exclusion covers
	// the category's own row.
	if _, err := store.RenameCategory(ctx, "tasks", "engineering tasks"); err != nil {
		t.Fatalf("rename to own name failed: %v", err)
	}

	var conflict *ConflictError
	if _, err := store.RenameCategory(ctx, "tasks", "meeting"); !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError renaming onto Meeting, got %v", err)
	}

	var notFound *NotFoundError
	if _, err := store.RenameCategory(ctx, "nope", "Whatever"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown id, got %v", err)
	}
}

func TestDeleteCategoryReassignsEntries(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	sprint, err := store.CreateSprint(ctx, "2026-08-03", 14, "")
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	entry, err := store.AddEntry(ctx, NewEntryInput{
		SprintID:   sprint.ID,
		Date:       "2026-08-04",
		CategoryID: "meeting",
		Title:      "Quarterly sync",
	})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := store.DeleteCategory(ctx, "meeting", "tasks"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	entries, err := store.ListEntries(ctx, sprint.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the entry to survive, got %d entries", len(entries))
	}
	if entries[0].ID != entry.ID || entries[0].CategoryID != "tasks" {
		t.Fatalf("expected entry reassigned to tasks, got %+v", entries[0])
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	for _, c := range categories {
		if c.ID == "meeting" {
			t.Fatalf("expected meeting to be gone, still present")
		}
	}
}

func TestDeleteCategoryPicksOldestReplacement(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	sprint, err := store.CreateSprint(ctx, "2026-08-03", 7, "")
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	if _, err := store.AddEntry(ctx, NewEntryInput{
		SprintID:   sprint.ID,
		Date:       "2026-08-04",
		CategoryID: "tasks",
		Title:      "Refactor importer",
	}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := store.DeleteCategory(ctx, "tasks", ""); err != nil {
		t.Fatalf("DeleteCategory without explicit replacement failed: %v", err)
	}

	entries, err := store.ListEntries(ctx, sprint.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].CategoryID == "tasks" {
		t.Fatalf("expected entry moved off tasks, got %+v", entries)
	}
}

func TestDeleteCategoryGuards(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, ctx)

	var notFound *NotFoundError
	if err := store.DeleteCategory(ctx, "nope", ""); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown id, got %v", err)
	}

	sprint, err := store.CreateSprint(ctx, "2026-08-03", 7, "")
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	if _, err := store.AddEntry(ctx, NewEntryInput{
		SprintID:   sprint.ID,
		Date:       "2026-08-04",
		CategoryID: "meeting",
		Title:      "Standup",
	}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	var validation *ValidationError
	if err := store.DeleteCategory(ctx, "meeting", "meeting"); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for self replacement, got %v", err)
	}
	if err := store.DeleteCategory(ctx, "meeting", "ghost"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown replacement, got %v", err)
	}

	if err := store.DeleteCategory(ctx, "pr-reviews", ""); err != nil {
		t.Fatalf("DeleteCategory pr-reviews failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, "tasks", ""); err != nil {
		t.Fatalf("DeleteCategory tasks failed: %v", err)
	}
	if err := store.DeleteCategory(ctx, "meeting", ""); !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError deleting the last category, got %v", err)
	}
}
