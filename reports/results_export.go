package reports

import (
	"fmt"
	"io"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

var resultsHeader = []interface{}{"ID", "Test", "Name", "Course", "Email", "Total Marks", "Submitted At"}

// WriteResults streams every row as one xlsx workbook.
func WriteResults(w io.Writer, rows []models.ResultRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &resultsHeader); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.ID,
			r.TestName,
			r.Name,
			r.Course,
			r.Email,
			r.TotalMarks,
			r.SubmittedAt.Local().Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(resultsSheet, "B", "E", 24); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
