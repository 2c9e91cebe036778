package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/health-assistant-server/internal/domain"
)

// RenderXLSX writes a report as a spreadsheet with a summary block, the
// insight list, and one row per input field.
func RenderXLSX(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rendering xlsx report %s: %w", report.ID, err)
	}

	rows := [][]interface{}{
		{"Report ID", report.ID},
		{"Disease", report.Disease.DisplayName()},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{"Risk Probability (%)", report.Probability},
		{"Verdict", report.Verdict.String()},
		{"Summary", report.Summary},
		{},
		{"Recommendations"},
	}
	for _, insight := range report.Insights {
		rows = append(rows, []interface{}{insight.Key, insight.Text})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Field", "Value"})
	for _, field := range report.Fields {
		rows = append(rows, []interface{}{field.Label, field.Value})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("rendering xlsx report %s: %w", report.ID, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("rendering xlsx report %s: %w", report.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("rendering xlsx report %s: %w", report.ID, err)
	}
	return nil
}
