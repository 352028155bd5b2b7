package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pkordes/tripjournal/internal/domain"
)

// SheetName is the worksheet holding the export.
const SheetName = "Export"

// amountColumn is the 1-based index of "amount" in Columns.
const amountColumn = 11

// writeXLSX writes a single-sheet workbook: a styled header row followed by
// one row per export row. Amounts are written as numbers so spreadsheets can
// sum them.
func writeXLSX(w io.Writer, rows []domain.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export.xlsx: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("export.xlsx: header style: %w", err)
	}

	for i, name := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("export.xlsx: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("export.xlsx: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "M", 16); err != nil {
		return fmt.Errorf("export.xlsx: %w", err)
	}

	for r, row := range rows {
		record := Record(row)
		values := make([]any, len(record))
		for i, v := range record {
			values[i] = v
		}
		if row.Amount != "" {
			if d, err := decimal.NewFromString(row.Amount); err == nil {
				values[amountColumn-1], _ = d.Float64()
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("export.xlsx: row %d: %w", r+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export.xlsx: %w", err)
	}
	return nil
}
