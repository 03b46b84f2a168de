package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmadsaptan/devlog/internal/models"
	"github.com/ahmadsaptan/devlog/internal/util"
)

// ListCategories returns all categories in creation order.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM categories ORDER BY created_at")
	if err != nil {
		return nil, wrapStorage("list categories", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, wrapStorage("list categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("list categories", err)
	}
	return categories, nil
}

// CreateCategory adds a category with a slug-derived id. The name must
// be non-empty after trimming and unique ignoring case.
func (s *Store) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, errValidation("category name is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.categoryNameExists(ctx, name, "")
	if err != nil {
		return models.Category{}, err
	}
	if exists {
		return models.Category{}, errConflict("category name %q already exists", name)
	}

	category := models.Category{
		ID:        fmt.Sprintf("cat-%s-%d", util.Slugify(name), time.Now().UTC().UnixMilli()),
		Name:      name,
		CreatedAt: now(),
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)",
		category.ID, category.Name, category.CreatedAt)
	if err != nil {
		return models.Category{}, wrapStorage("create category", err)
	}
	return category, nil
}

// RenameCategory changes a category's display name, keeping the
// case-insensitive uniqueness rule (the category's own id excluded).
func (s *Store) RenameCategory(ctx context.Context, id, name string) (models.Category, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return models.Category{}, errValidation("category id is required")
	}
	if name == "" {
		return models.Category{}, errValidation("category name is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.categoryNameExists(ctx, name, id)
	if err != nil {
		return models.Category{}, err
	}
	if exists {
		return models.Category{}, errConflict("category name %q already exists", name)
	}

	res, err := s.DB.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.Category{}, wrapStorage("rename category", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Category{}, wrapStorage("rename category", err)
	}
	if affected == 0 {
		return models.Category{}, errNotFound("category", id)
	}

	var category models.Category
	err = s.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM categories WHERE id = ?", id).
		Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		return models.Category{}, wrapStorage("load renamed category", err)
	}
	return category, nil
}

// DeleteCategory removes a category. The last remaining category can
// never be deleted. When entries reference it, they are reassigned to
// replacementID (or, if empty, the oldest other category) inside the
// same transaction that removes the row.
func (s *Store) DeleteCategory(ctx context.Context, id, replacementID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errValidation("category id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage("delete category begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var total int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&total); err != nil {
		return wrapStorage("count categories", err)
	}
	if total <= 1 {
		return errValidation("at least one category is required")
	}

	var one int64
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound("category", id)
	}
	if err != nil {
		return wrapStorage("check category", err)
	}

	var used int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE category_id = ?", id).Scan(&used); err != nil {
		return wrapStorage("count category usage", err)
	}

	if used > 0 {
		replacement := strings.TrimSpace(replacementID)
		if replacement == "" {
			err = tx.QueryRowContext(ctx,
				"SELECT id FROM categories WHERE id <> ? ORDER BY created_at LIMIT 1", id).
				Scan(&replacement)
			if errors.Is(err, sql.ErrNoRows) {
				return errNotFound("replacement category", "")
			}
			if err != nil {
				return wrapStorage("find replacement category", err)
			}
		}
		if replacement == id {
			return errValidation("replacement category must be different")
		}

		err = tx.QueryRowContext(ctx,
			"SELECT 1 FROM categories WHERE id = ? LIMIT 1", replacement).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return errNotFound("replacement category", replacement)
		}
		if err != nil {
			return wrapStorage("check replacement category", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE entries SET category_id = ? WHERE category_id = ?", replacement, id); err != nil {
			return wrapStorage("reassign category entries", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return wrapStorage("delete category", err)
	}
	if err := tx.Commit(); err != nil {
		return wrapStorage("delete category commit", err)
	}
	committed = true
	return nil
}

func (s *Store) categoryNameExists(ctx context.Context, name, excludingID string) (bool, error) {
	query := "SELECT id FROM categories WHERE lower(name) = lower(?) LIMIT 1"
	args := []interface{}{name}
	if excludingID != "" {
		query = "SELECT id FROM categories WHERE lower(name) = lower(?) AND id <> ? LIMIT 1"
		args = append(args, excludingID)
	}

	var existing string
	err := s.DB.QueryRowContext(ctx, query, args...).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapStorage("check category uniqueness", err)
	}
	return true, nil
}

func (s *Store) categoryExists(ctx context.Context, id string) (bool, error) {
	var one int64
	err := s.DB.QueryRowContext(ctx,
		"SELECT 1 FROM categories WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapStorage("check category existence", err)
	}
	return true, nil
}
