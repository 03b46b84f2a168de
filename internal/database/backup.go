package database

import (
	"context"
	"encoding/json"

	"github.com/ahmadsaptan/devlog/internal/models"
)

// Backup is the full-store JSON document produced by ExportBackup. It
// deliberately shares the legacy snapshot's field names so a backup is
// readable by the same tooling.
type Backup struct {
	Categories []models.Category   `json:"categories"`
	Sprints    []models.Sprint     `json:"sprints"`
	Entries    []models.DailyEntry `json:"entries"`
}

// BackupOptions controls export behavior.
type BackupOptions struct {
	Passphrase string
}

// ExportBackup serializes every category, sprint, and entry. With a
// passphrase the payload is AES-GCM encrypted.
func (s *Store) ExportBackup(ctx context.Context, opts BackupOptions) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	sprints, err := s.listSprints(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.DailyEntry
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, sprint_id, date, category_id, title, details, created_at
		FROM entries ORDER BY created_at`)
	if err != nil {
		return nil, wrapStorage("export entries", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e models.DailyEntry
		if err := rows.Scan(&e.ID, &e.SprintID, &e.Date, &e.CategoryID, &e.Title, &e.Details, &e.CreatedAt); err != nil {
			return nil, wrapStorage("export entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("export entries", err)
	}

	backup := Backup{Categories: categories, Sprints: sprints, Entries: entries}
	payload, err := json.Marshal(backup)
	if err != nil {
		return nil, wrapStorage("encode backup", err)
	}
	if opts.Passphrase != "" {
		return encryptData(payload, opts.Passphrase)
	}
	return payload, nil
}

// ImportBackup restores a backup document in one transaction with
// replace semantics. Unlike the legacy import it may run against a
// populated store and is only ever invoked explicitly.
func (s *Store) ImportBackup(ctx context.Context, payload []byte, passphrase string) error {
	if isEncryptedPayload(payload) {
		decrypted, err := decryptData(payload, passphrase)
		if err != nil {
			return err
		}
		payload = decrypted
	}

	var backup Backup
	if err := json.Unmarshal(payload, &backup); err != nil {
		return wrapStorage("decode backup", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage("import backup begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, category := range backup.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO categories (id, name, created_at) VALUES (?, ?, ?)",
			category.ID, category.Name, category.CreatedAt); err != nil {
			return wrapStorage("import category "+category.ID, err)
		}
	}
	for _, sprint := range backup.Sprints {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO sprints (id, code, name, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			sprint.ID, sprint.Code, sprint.Name, sprint.StartDate, sprint.EndDate, sprint.CreatedAt); err != nil {
			return wrapStorage("import sprint "+sprint.ID, err)
		}
	}
	for _, entry := range backup.Entries {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO entries (id, sprint_id, date, category_id, title, details, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			entry.ID, entry.SprintID, entry.Date, entry.CategoryID, entry.Title, entry.Details, entry.CreatedAt); err != nil {
			return wrapStorage("import entry "+entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapStorage("import backup commit", err)
	}
	committed = true
	return nil
}
