// Package database owns the persistent representation of categories,
// sprints, and daily entries, and enforces their referential and
// uniqueness rules.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ahmadsaptan/devlog/internal/config"
	"github.com/ahmadsaptan/devlog/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the single-writer handle to the SQLite database. Callers
// open one per process and pass it explicitly; there is no package
// singleton.
type Store struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the database at dbPath and brings it
// to a serviceable state: schema init, one-shot legacy import when the
// store is empty and a snapshot exists at legacyPath, default-category
// seeding, and sprint-code normalization. Every step is idempotent, so
// repeated opens are safe.
func Open(ctx context.Context, dbPath, legacyPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrapStorage("create data directory", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, wrapStorage("open database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapStorage("open database", err)
	}

	s := &Store{DB: db, dbFile: dbPath}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if legacyPath != "" {
		if err := s.importLegacy(ctx, legacyPath); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err := s.ensureDefaultCategories(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.normalizeSprintCodes(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.dbFile
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.DBTimeout)
}

func (s *Store) initSchema(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sprints (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			sprint_id TEXT NOT NULL,
			date TEXT NOT NULL,
			category_id TEXT NOT NULL,
			title TEXT NOT NULL,
			details TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (sprint_id) REFERENCES sprints(id) ON DELETE CASCADE,
			FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_sprint_date
			ON entries (sprint_id, date, category_id, created_at);`,
	}

	for _, query := range queries {
		if _, err := s.DB.ExecContext(ctx, query); err != nil {
			return wrapStorage("initialize schema", err)
		}
	}
	return nil
}

// isEmpty reports whether the store holds zero categories, zero
// sprints, and zero entries. It is the sole gate for the legacy import.
func (s *Store) isEmpty(ctx context.Context) (bool, error) {
	for _, table := range []string{"categories", "sprints", "entries"} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return false, wrapStorage("count "+table, err)
		}
		if count > 0 {
			return false, nil
		}
	}
	return true, nil
}

func defaultCategories() []models.Category {
	createdAt := now()
	return []models.Category{
		{ID: "pr-reviews", Name: "PR-Reviews", CreatedAt: createdAt},
		{ID: "meeting", Name: "Meeting", CreatedAt: createdAt},
		{ID: "tasks", Name: "Tasks", CreatedAt: createdAt},
	}
}

func (s *Store) ensureDefaultCategories(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return wrapStorage("count categories", err)
	}
	if count > 0 {
		return nil
	}

	for _, category := range defaultCategories() {
		_, err := s.DB.ExecContext(ctx,
			"INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)",
			category.ID, category.Name, category.CreatedAt)
		if err != nil {
			return wrapStorage("seed default category "+category.ID, err)
		}
	}
	return nil
}

// now returns the current UTC time in the fixed-width RFC 3339 form
// used for all created_at columns.
func now() string {
	return time.Now().UTC().Format(config.TimestampLayout)
}

// nextID builds a prefix-qualified id from a nanosecond timestamp.
func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UTC().UnixNano())
}

// today returns the current local calendar date.
func today() string {
	return time.Now().Format(config.DateLayout)
}
