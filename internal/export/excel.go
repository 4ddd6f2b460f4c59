package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const candidatesSheet = "Candidates"

// ExcelBytes renders the extraction table as an XLSX workbook in memory.
// This backs the local download, for users without a configured Google Sheet.
func ExcelBytes(headers []string, rows [][]string) ([]byte, error) {
	f, err := buildWorkbook(headers, rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// buildWorkbook creates a single-sheet workbook with a styled header row and
// one row per extracted CV
func buildWorkbook(headers []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", candidatesSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		f.SetCellValue(candidatesSheet, cell, header)
		f.SetCellStyle(candidatesSheet, cell, cell, headerStyle)

		name, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(candidatesSheet, name, name, 22)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			f.SetCellValue(candidatesSheet, cell, value)
		}
	}

	return f, nil
}
