package database

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ahmadsaptan/devlog/internal/models"
)

// SprintNumber extracts the numeric part of a sprint code or name.
// Accepts a bare integer or an optional case-insensitive sprint /
// sprint- / sprint_ prefix followed by one. Returns false when no
// number can be extracted.
func SprintNumber(raw string) (int, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, false
	}

	if number, err := strconv.ParseUint(value, 10, 32); err == nil {
		return int(number), true
	}

	if !strings.HasPrefix(value, "sprint") {
		return 0, false
	}
	rest := strings.TrimPrefix(value, "sprint")
	rest = strings.TrimSpace(rest)
	rest = strings.TrimLeft(rest, "-_")
	rest = strings.TrimSpace(rest)

	number, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(number), true
}

// FormatSprintCode renders the canonical sprint-<N> form.
func FormatSprintCode(number int) string {
	return fmt.Sprintf("sprint-%d", number)
}

type codeChange struct {
	id   string
	code string
}

// planSprintCodes decides the normalized code for every sprint.
// Sprints are walked in creation order; a sprint keeps its extractable
// number (from code, falling back to name) when no earlier sprint has
// claimed it, otherwise it gets the smallest unused integer above the
// running highest. The highest starts at the maximum extractable
// number across all sprints, so renumbering never clashes with an
// untouched sprint later in the scan. Only sprints whose stored code
// differs from the assignment are returned. The plan is idempotent:
// applying it and planning again yields no changes.
func planSprintCodes(sprints []models.Sprint) []codeChange {
	ordered := make([]models.Sprint, len(sprints))
	copy(ordered, sprints)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt < ordered[j].CreatedAt
	})

	highest := 0
	for _, sprint := range ordered {
		number, ok := SprintNumber(sprint.Code)
		if !ok {
			number, ok = SprintNumber(sprint.Name)
		}
		if ok && number > highest {
			highest = number
		}
	}

	used := make(map[int]bool, len(ordered))
	var changes []codeChange

	for _, sprint := range ordered {
		number, ok := SprintNumber(sprint.Code)
		if !ok {
			number, ok = SprintNumber(sprint.Name)
		}

		chosen := number
		if !ok || used[number] {
			chosen = highest + 1
			for used[chosen] {
				chosen++
			}
		}

		used[chosen] = true
		if chosen > highest {
			highest = chosen
		}

		if normalized := FormatSprintCode(chosen); sprint.Code != normalized {
			changes = append(changes, codeChange{id: sprint.ID, code: normalized})
		}
	}
	return changes
}

// normalizeSprintCodes repairs the sprint-<N> numbering scheme in
// place. It runs on every store open.
func (s *Store) normalizeSprintCodes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sprints, err := s.listSprints(ctx)
	if err != nil {
		return err
	}

	for _, change := range planSprintCodes(sprints) {
		if _, err := s.DB.ExecContext(ctx,
			"UPDATE sprints SET code = ? WHERE id = ?", change.code, change.id); err != nil {
			return wrapStorage("normalize sprint code", err)
		}
	}
	return nil
}

// nextSprintCode assigns the code for a newly created sprint: one past
// the highest number extractable from any existing code or name.
func (s *Store) nextSprintCode(ctx context.Context) (string, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT code, name FROM sprints")
	if err != nil {
		return "", wrapStorage("scan sprint codes", err)
	}
	defer rows.Close()

	highest := 0
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return "", wrapStorage("scan sprint codes", err)
		}
		number, ok := SprintNumber(code)
		if !ok {
			number, ok = SprintNumber(name)
		}
		if ok && number > highest {
			highest = number
		}
	}
	if err := rows.Err(); err != nil {
		return "", wrapStorage("scan sprint codes", err)
	}
	return FormatSprintCode(highest + 1), nil
}
