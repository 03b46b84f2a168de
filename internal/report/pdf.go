package report

import (
	"fmt"
	"time"

	"github.com/ahmadsaptan/devlog/internal/models"
	"github.com/ahmadsaptan/devlog/internal/util"
	"github.com/go-pdf/fpdf"
)

// renderPDF writes the same report content as the Markdown document,
// laid out for print.
func renderPDF(sprint models.Sprint, sections []daySection, opts Options, total int, exportedAt time.Time, path string) error {
	endDate := util.Deref(sprint.EndDate)
	if endDate == "" {
		endDate = "open"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Sprint Report: %s", sprint.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Sprint Code: %s", sprint.Code))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Sprint Window: %s to %s", sprint.StartDate, endDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Exported At: %s", exportedAt.Format(time.RFC3339)))
	pdf.Ln(6)
	if opts.FromDate != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Report From: %s", opts.FromDate))
		pdf.Ln(6)
	}
	if opts.ToDate != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Report To: %s", opts.ToDate))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Included Items: %d", total))
	pdf.Ln(10)

	if len(sections) == 0 {
		pdf.Cell(0, 8, "No items found for the selected filters.")
		return pdf.OutputFileAndClose(path)
	}

	for _, day := range sections {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, day.Date)
		pdf.Ln(8)

		for _, category := range day.Categories {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(0, 8, category.Name)
			pdf.Ln(6)

			pdf.SetFont("Arial", "", 11)
			for _, entry := range category.Entries {
				line := "- " + entry.Title
				if entry.Details != nil {
					line += " - " + *entry.Details
				}
				pdf.MultiCell(0, 6, line, "", "", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}
	return pdf.OutputFileAndClose(path)
}
