package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ahmadsaptan/devlog/internal/config"
	"github.com/ahmadsaptan/devlog/internal/models"
)

// ListSprints returns all sprints in creation order.
func (s *Store) ListSprints(ctx context.Context) ([]models.Sprint, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.listSprints(ctx)
}

func (s *Store) listSprints(ctx context.Context) ([]models.Sprint, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, code, name, start_date, end_date, created_at FROM sprints ORDER BY created_at")
	if err != nil {
		return nil, wrapStorage("list sprints", err)
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		var sp models.Sprint
		if err := rows.Scan(&sp.ID, &sp.Code, &sp.Name, &sp.StartDate, &sp.EndDate, &sp.CreatedAt); err != nil {
			return nil, wrapStorage("list sprints", err)
		}
		sprints = append(sprints, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage("list sprints", err)
	}
	return sprints, nil
}

// SprintByID loads a single sprint.
func (s *Store) SprintByID(ctx context.Context, id string) (models.Sprint, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var sp models.Sprint
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, code, name, start_date, end_date, created_at FROM sprints WHERE id = ?", id).
		Scan(&sp.ID, &sp.Code, &sp.Name, &sp.StartDate, &sp.EndDate, &sp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sprint{}, errNotFound("sprint", id)
	}
	if err != nil {
		return models.Sprint{}, wrapStorage("load sprint", err)
	}
	return sp, nil
}

// CreateSprint adds a sprint starting at startDate (YYYY-MM-DD) and
// running durationDays (7 or 14; 0 means the default of 14). The end
// date is start + duration - 1 day. The code comes from the allocator
// and the name defaults to the code.
func (s *Store) CreateSprint(ctx context.Context, startDate string, durationDays int, name string) (models.Sprint, error) {
	startDate = strings.TrimSpace(startDate)
	if startDate == "" {
		return models.Sprint{}, errValidation("start_date is required")
	}
	start, err := time.Parse(config.DateLayout, startDate)
	if err != nil {
		return models.Sprint{}, errValidation("start_date must be in YYYY-MM-DD format")
	}
	if durationDays == 0 {
		durationDays = config.DefaultSprintDays
	}
	if durationDays != config.ShortSprintDays && durationDays != config.DefaultSprintDays {
		return models.Sprint{}, errValidation("duration_days must be 7 or 14")
	}
	endDate := start.AddDate(0, 0, durationDays-1).Format(config.DateLayout)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	code, err := s.nextSprintCode(ctx)
	if err != nil {
		return models.Sprint{}, err
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = code
	}

	sprint := models.Sprint{
		ID:        nextID("sprint"),
		Code:      code,
		Name:      displayName,
		StartDate: startDate,
		EndDate:   &endDate,
		CreatedAt: now(),
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO sprints (id, code, name, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		sprint.ID, sprint.Code, sprint.Name, sprint.StartDate, sprint.EndDate, sprint.CreatedAt)
	if err != nil {
		return models.Sprint{}, wrapStorage("create sprint", err)
	}
	return sprint, nil
}

// RenameSprint updates the display name only; the code is immutable
// through this path.
func (s *Store) RenameSprint(ctx context.Context, id, name string) (models.Sprint, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return models.Sprint{}, errValidation("sprint id is required")
	}
	if name == "" {
		return models.Sprint{}, errValidation("sprint name is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.DB.ExecContext(ctx, "UPDATE sprints SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.Sprint{}, wrapStorage("rename sprint", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Sprint{}, wrapStorage("rename sprint", err)
	}
	if affected == 0 {
		return models.Sprint{}, errNotFound("sprint", id)
	}
	return s.SprintByID(ctx, id)
}

// DeleteSprint removes a sprint and cascades the deletion of its
// entries. The currently active sprint cannot be deleted.
func (s *Store) DeleteSprint(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errValidation("sprint id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sprints, err := s.listSprints(ctx)
	if err != nil {
		return err
	}
	if activeID, ok := PickActiveSprintID(sprints, today()); ok && activeID == id {
		return errValidation("cannot delete the active sprint")
	}

	res, err := s.DB.ExecContext(ctx, "DELETE FROM sprints WHERE id = ?", id)
	if err != nil {
		return wrapStorage("delete sprint", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapStorage("delete sprint", err)
	}
	if affected == 0 {
		return errNotFound("sprint", id)
	}
	return nil
}

func (s *Store) sprintExists(ctx context.Context, id string) (bool, error) {
	var one int64
	err := s.DB.QueryRowContext(ctx,
		"SELECT 1 FROM sprints WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapStorage("check sprint existence", err)
	}
	return true, nil
}
