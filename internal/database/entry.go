package database

import (
	"context"
	"strings"

	"github.com/ahmadsaptan/devlog/internal/models"
)

// NewEntryInput carries the fields for AddEntry.
type NewEntryInput struct {
	SprintID   string
	Date       string
	CategoryID string
	Title      string
	Details    string
}

// ListEntries returns a sprint's entries sorted by (date, category_id,
// created_at) ascending. This ordering keeps report grouping stable
// independent of storage order.
func (s *Store) ListEntries(ctx context.Context, sprintID string) ([]models.DailyEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, sprint_id, date, category_id, title, details, created_at
		FROM entries
		WHERE sprint_id = ?
		ORDER BY date, category_id, created_at`, sprintID)
	if err != nil {
		return nil, wrapStorage("list entries", err)
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		var e models.DailyEntry
		if err := rows.Scan(&e.ID, &e.SprintID, &e.Date, &e.CategoryID, &e.Title, &e.Details, &e.CreatedAt); err != nil {
			return nil, wrapStorage("list entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("list entries", err)
	}
	return entries, nil
}

// AddEntry logs one item. The sprint and category must both exist and
// the title and date must be non-empty. Details that are blank after
// trimming are stored as absent.
func (s *Store) AddEntry(ctx context.Context, in NewEntryInput) (models.DailyEntry, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.DailyEntry{}, errValidation("title is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return models.DailyEntry{}, errValidation("date is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return models.DailyEntry{}, errValidation("category_id is required")
	}
	if strings.TrimSpace(in.SprintID) == "" {
		return models.DailyEntry{}, errValidation("sprint_id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.sprintExists(ctx, in.SprintID)
	if err != nil {
		return models.DailyEntry{}, err
	}
	if !exists {
		return models.DailyEntry{}, errNotFound("sprint", in.SprintID)
	}
	exists, err = s.categoryExists(ctx, in.CategoryID)
	if err != nil {
		return models.DailyEntry{}, err
	}
	if !exists {
		return models.DailyEntry{}, errNotFound("category", in.CategoryID)
	}

	var details *string
	if trimmed := strings.TrimSpace(in.Details); trimmed != "" {
		details = &trimmed
	}

	entry := models.DailyEntry{
		ID:         nextID("entry"),
		SprintID:   in.SprintID,
		Date:       in.Date,
		CategoryID: in.CategoryID,
		Title:      title,
		Details:    details,
		CreatedAt:  now(),
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO entries (id, sprint_id, date, category_id, title, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SprintID, entry.Date, entry.CategoryID, entry.Title, entry.Details, entry.CreatedAt)
	if err != nil {
		return models.DailyEntry{}, wrapStorage("add entry", err)
	}
	return entry, nil
}
