// Package models holds the entities shared by the store, the report
// engine, and the CLI front end.
package models

// Category is a tag a daily entry is filed under. Names are unique
// ignoring case; at least one category exists at all times.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Sprint is a dated work window. Code is the canonical sprint-<N>
// identifier; Name defaults to Code when not supplied. A nil EndDate
// means the sprint is open-ended.
type Sprint struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	CreatedAt string  `json:"created_at"`
}

// DailyEntry is a single logged item on a date, belonging to exactly
// one sprint and one category.
type DailyEntry struct {
	ID         string  `json:"id"`
	SprintID   string  `json:"sprint_id"`
	Date       string  `json:"date"`
	CategoryID string  `json:"category_id"`
	Title      string  `json:"title"`
	Details    *string `json:"details,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
