// Package report turns stored entries into deterministic Markdown
// documents, optionally mirrored as PDF.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ahmadsaptan/devlog/internal/models"
	"github.com/ahmadsaptan/devlog/internal/util"
)

// Store is the read-only query surface the engine consumes.
type Store interface {
	SprintByID(ctx context.Context, id string) (models.Sprint, error)
	ListEntries(ctx context.Context, sprintID string) ([]models.DailyEntry, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Options selects and filters the report content. Empty bounds are
// open; an empty category set means all categories.
type Options struct {
	SprintID    string
	FromDate    string
	ToDate      string
	CategoryIDs []string
	PDF         bool
}

// Output is the rendered report.
type Output struct {
	Markdown   string
	FilePath   string
	PDFPath    string
	TotalItems int
}

type categorySection struct {
	Name    string
	Entries []models.DailyEntry
}

type daySection struct {
	Date       string
	Categories []categorySection
}

// Generate renders a sprint report and persists it under reportsDir.
// Two calls with identical inputs and entries produce byte-identical
// Markdown except for the export timestamp and output file path.
func Generate(ctx context.Context, store Store, reportsDir string, opts Options) (Output, error) {
	sprint, err := store.SprintByID(ctx, opts.SprintID)
	if err != nil {
		return Output{}, err
	}
	entries, err := store.ListEntries(ctx, opts.SprintID)
	if err != nil {
		return Output{}, err
	}
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return Output{}, err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	filtered := filterEntries(entries, opts)
	sections := buildSections(filtered, categoryNames)

	exportedAt := time.Now().UTC()
	markdown := renderMarkdown(sprint, sections, opts, len(filtered), exportedAt)

	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("unable to create reports dir %s: %w", reportsDir, err)
	}
	base := fmt.Sprintf("report-%s-%s", util.Slugify(sprint.Name), exportedAt.Format("20060102150405"))
	path := filepath.Join(reportsDir, base+".md")
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return Output{}, fmt.Errorf("unable to write report file %s: %w", path, err)
	}

	out := Output{
		Markdown:   markdown,
		FilePath:   path,
		TotalItems: len(filtered),
	}
	if opts.PDF {
		pdfPath := filepath.Join(reportsDir, base+".pdf")
		if err := renderPDF(sprint, sections, opts, len(filtered), exportedAt, pdfPath); err != nil {
			return Output{}, err
		}
		out.PDFPath = pdfPath
	}
	return out, nil
}

func withinRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// filterEntries applies the date window and category set, then sorts
// by (date, category_id, created_at) ascending. The sort is
// load-bearing: it fixes grouping and within-day order independent of
// storage order.
func filterEntries(entries []models.DailyEntry, opts Options) []models.DailyEntry {
	var categorySet map[string]bool
	if len(opts.CategoryIDs) > 0 {
		categorySet = make(map[string]bool, len(opts.CategoryIDs))
		for _, id := range opts.CategoryIDs {
			categorySet[id] = true
		}
	}

	var filtered []models.DailyEntry
	for _, entry := range entries {
		if !withinRange(entry.Date, opts.FromDate, opts.ToDate) {
			continue
		}
		if categorySet != nil && !categorySet[entry.CategoryID] {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		if filtered[i].CategoryID != filtered[j].CategoryID {
			return filtered[i].CategoryID < filtered[j].CategoryID
		}
		return filtered[i].CreatedAt < filtered[j].CreatedAt
	})
	return filtered
}

// buildSections groups sorted entries by date, then by category display
// name ascending. A deleted category falls back to its raw id.
func buildSections(entries []models.DailyEntry, categoryNames map[string]string) []daySection {
	var sections []daySection
	byDate := make(map[string]map[string][]models.DailyEntry)

	for _, entry := range entries {
		label := categoryNames[entry.CategoryID]
		if label == "" {
			label = entry.CategoryID
		}
		if byDate[entry.Date] == nil {
			byDate[entry.Date] = make(map[string][]models.DailyEntry)
			sections = append(sections, daySection{Date: entry.Date})
		}
		byDate[entry.Date][label] = append(byDate[entry.Date][label], entry)
	}

	for i := range sections {
		labels := byDate[sections[i].Date]
		names := make([]string, 0, len(labels))
		for name := range labels {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sections[i].Categories = append(sections[i].Categories, categorySection{
				Name:    name,
				Entries: labels[name],
			})
		}
	}
	return sections
}

func renderMarkdown(sprint models.Sprint, sections []daySection, opts Options, total int, exportedAt time.Time) string {
	var b strings.Builder

	endDate := util.Deref(sprint.EndDate)
	if endDate == "" {
		endDate = "open"
	}

	fmt.Fprintf(&b, "# Sprint Report: %s\n\n", sprint.Name)
	fmt.Fprintf(&b, "- Sprint ID: `%s`\n", sprint.ID)
	fmt.Fprintf(&b, "- Sprint Code: `%s`\n", sprint.Code)
	fmt.Fprintf(&b, "- Sprint Window: %s to %s\n", sprint.StartDate, endDate)
	fmt.Fprintf(&b, "- Exported At: %s\n", exportedAt.Format(time.RFC3339))
	if opts.FromDate != "" {
		fmt.Fprintf(&b, "- Report From: %s\n", opts.FromDate)
	}
	if opts.ToDate != "" {
		fmt.Fprintf(&b, "- Report To: %s\n", opts.ToDate)
	}
	fmt.Fprintf(&b, "- Included Items: %d\n\n", total)

	if len(sections) == 0 {
		b.WriteString("No items found for the selected filters.\n")
		return b.String()
	}

	for _, day := range sections {
		fmt.Fprintf(&b, "## %s\n\n", day.Date)
		for _, category := range day.Categories {
			fmt.Fprintf(&b, "### %s\n", category.Name)
			for _, entry := range category.Entries {
				b.WriteString("- " + entry.Title)
				if entry.Details != nil {
					b.WriteString(" - " + *entry.Details)
				}
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
