// Package export renders assessment reports into downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/health-assistant-server/internal/domain"
)

// RenderPDF writes a report as a single-page PDF document: title, date,
// verdict summary, the insight list, and every input field with its label.
func RenderPDF(w io.Writer, report *domain.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Risk Report", report.Disease.DisplayName()), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s Risk Report", report.Disease.DisplayName()), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s", report.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Diagnosis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, report.Summary, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, insight := range report.Insights {
		pdf.MultiCell(0, 6, "- "+insight.Text, "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Input Values", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, field := range report.Fields {
		pdf.CellFormat(90, 6, field.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%g", field.Value), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf report %s: %w", report.ID, err)
	}
	return nil
}
