package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ExportCSV writes the table to a UTF-8 CSV file: one header line, one
// line per row, fields quoted per RFC 4180 when needed. Any existing
// file at the destination is overwritten.
func ExportCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	err = w.WriteAll(t.Records())
	if err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ExportXLSX writes the table to a single-sheet xlsx workbook with the
// same header-then-rows layout as the CSV export.
func ExportXLSX(t *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	// cells keep their cleaned types so numeric columns come out as
	// numbers in the workbook
	for i, row := range t.Rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, addr, &row)
		if err != nil {
			return fmt.Errorf("write sheet row %d: %w", i+2, err)
		}
	}

	return f.SaveAs(path)
}
