package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: an optional title row, a header row and data rows.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
	Widths  []float64 // per column, zero keeps the default
}

// WriteXLSX renders sheets into a workbook. The first sheet is active.
func WriteXLSX(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New("export: at least one sheet is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return nil, fmt.Errorf("export: title style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("export: new sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, titleStyle); err != nil {
			return nil, fmt.Errorf("export: sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, titleStyle int) error {
	row := 1
	if sheet.Title != "" {
		if err := f.SetCellValue(sheet.Name, "A1", sheet.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", "A1", titleStyle); err != nil {
			return err
		}
		row = 3
	}

	for col, h := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for _, values := range sheet.Rows {
		row++
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return err
			}
		}
	}

	for col, width := range sheet.Widths {
		if width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
	}

	return nil
}
