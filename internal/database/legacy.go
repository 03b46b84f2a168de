package database

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/ahmadsaptan/devlog/internal/models"
	"github.com/ahmadsaptan/devlog/internal/util"
	"github.com/google/uuid"
)

// snapshotEntry mirrors models.DailyEntry with the legacy "category"
// alias for category_id, resolved explicitly during decode.
type snapshotEntry struct {
	ID         string  `json:"id"`
	SprintID   string  `json:"sprint_id"`
	Date       string  `json:"date"`
	CategoryID string  `json:"category_id"`
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Details    *string `json:"details"`
	CreatedAt  string  `json:"created_at"`
}

func (e snapshotEntry) toEntry() models.DailyEntry {
	categoryID := e.CategoryID
	if categoryID == "" {
		categoryID = e.Category
	}
	return models.DailyEntry{
		ID:         e.ID,
		SprintID:   e.SprintID,
		Date:       e.Date,
		CategoryID: categoryID,
		Title:      e.Title,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

type legacySnapshot struct {
	Categories []models.Category `json:"categories"`
	Sprints    []models.Sprint   `json:"sprints"`
	Entries    []snapshotEntry   `json:"entries"`
}

// importLegacy migrates the flat JSON snapshot at path into the store.
// It runs only when the store holds zero categories, zero sprints, and
// zero entries and the snapshot file exists; emptiness is the sole
// gate. The whole migration is one transaction; individually malformed
// historical records are skipped so the rest of a noisy snapshot
// imports cleanly. The snapshot file is never deleted.
func (s *Store) importLegacy(ctx context.Context, path string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	empty, err := s.isEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &ImportError{Path: path, Err: err}
	}

	var legacy legacySnapshot
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return &ImportError{Path: path, Err: err}
	}

	if len(legacy.Categories) == 0 {
		legacy.Categories = defaultCategories()
	}

	// Normalize sprint codes in memory before anything is written.
	codes := make(map[string]string, len(legacy.Sprints))
	for _, change := range planSprintCodes(legacy.Sprints) {
		codes[change.id] = change.code
	}
	for i := range legacy.Sprints {
		if code, ok := codes[legacy.Sprints[i].ID]; ok {
			legacy.Sprints[i].Code = code
		}
	}

	// Entries may reference categories the snapshot never declared;
	// synthesize them with a humanized display name.
	knownCategories := make(map[string]bool, len(legacy.Categories))
	for _, category := range legacy.Categories {
		knownCategories[category.ID] = true
	}
	for _, raw := range legacy.Entries {
		categoryID := strings.TrimSpace(raw.toEntry().CategoryID)
		if categoryID == "" || knownCategories[categoryID] {
			continue
		}
		legacy.Categories = append(legacy.Categories, models.Category{
			ID:        categoryID,
			Name:      util.HumanizeCategoryID(categoryID),
			CreatedAt: now(),
		})
		knownCategories[categoryID] = true
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return &ImportError{Path: path, Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, category := range legacy.Categories {
		if strings.TrimSpace(category.ID) == "" || strings.TrimSpace(category.Name) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (id, name, created_at) VALUES (?, ?, ?)",
			category.ID, category.Name, category.CreatedAt); err != nil {
			return &ImportError{Path: path, Err: err}
		}
	}

	migratedSprints := make(map[string]bool, len(legacy.Sprints))
	for _, sprint := range legacy.Sprints {
		if strings.TrimSpace(sprint.ID) == "" || strings.TrimSpace(sprint.StartDate) == "" {
			continue
		}

		code := strings.TrimSpace(sprint.Code)
		if code == "" {
			// Normalization has already assigned codes, so this is a
			// safety net only; a subsecond fragment avoids a second
			// allocator pass.
			code = FormatSprintCode(time.Now().Nanosecond())
		}
		name := strings.TrimSpace(sprint.Name)
		if name == "" {
			name = code
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO sprints (id, code, name, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			sprint.ID, code, name, sprint.StartDate, sprint.EndDate, sprint.CreatedAt); err != nil {
			return &ImportError{Path: path, Err: err}
		}
		migratedSprints[sprint.ID] = true
	}

	for _, raw := range legacy.Entries {
		entry := raw.toEntry()
		if strings.TrimSpace(entry.SprintID) == "" ||
			strings.TrimSpace(entry.CategoryID) == "" ||
			strings.TrimSpace(entry.Title) == "" ||
			strings.TrimSpace(entry.Date) == "" {
			continue
		}
		if !migratedSprints[entry.SprintID] {
			continue
		}
		if strings.TrimSpace(entry.ID) == "" {
			entry.ID = "entry-import-" + uuid.NewString()
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO entries (id, sprint_id, date, category_id, title, details, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			entry.ID, entry.SprintID, entry.Date, entry.CategoryID, entry.Title, entry.Details, entry.CreatedAt); err != nil {
			return &ImportError{Path: path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &ImportError{Path: path, Err: err}
	}
	committed = true
	return nil
}
