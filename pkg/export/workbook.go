package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// PlanHeader is the header row of every day sheet
var PlanHeader = []string{"Hub", "SSN", "Last", "First", "Age", "Interval"}

// DayNames names the day sheets; day index 0 is Monday
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var columnWidths = []float64{18, 18, 20, 20, 8, 12}

// Row is one allocated person in the exported plan
type Row struct {
	Hub       string
	SSN       string
	LastName  string
	FirstName string
	Age       int
	Interval  string
}

// Plan holds the rows of each day of the week, in hub then slot order
type Plan [7][]Row

// Workbook builds a workbook with one sheet per day.
// The caller owns the returned file and must Close it.
func Workbook(plan Plan) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for day, rows := range plan {
		sheet := DayNames[day]
		index, err := f.NewSheet(sheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if day == 0 {
			f.SetActiveSheet(index)
		}

		if err := writeDay(f, sheet, rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	return f, nil
}

func writeDay(f *excelize.File, sheet string, rows []Row, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &PlanHeader); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(PlanHeader), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style on %s: %w", sheet, err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width on %s: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		values := []any{row.Hub, row.SSN, row.LastName, row.FirstName, row.Age, row.Interval}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+2, sheet, err)
		}
	}

	// Keep the header visible while scrolling
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header on %s: %w", sheet, err)
	}

	return nil
}

// WritePlan writes the plan workbook to w
func WritePlan(w io.Writer, plan Plan) error {
	f, err := Workbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
