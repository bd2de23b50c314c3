// Package tabular holds an in-memory table with named columns, the
// declarative cleaning rules applied to it, and its exporters.
package tabular

import (
	"fmt"
	"strconv"
)

// Table is an ordered set of named columns over positionally aligned
// rows. Raw cells are strings; cleaning replaces cells of numeric
// columns with int64 or float64 values.
type Table struct {
	Headers []string
	Rows    [][]any
}

// AssembleResult carries the assembled table along with counts of rows
// that had to be repaired to match the header arity.
type AssembleResult struct {
	Table         *Table
	PaddedRows    int
	TruncatedRows int
}

// Assemble zips headers with rows into a Table. The column count is
// fixed to len(headers): rows with fewer cells are padded with empty
// strings, rows with more cells are truncated. Both repairs are counted
// so the caller can surface them.
func Assemble(headers []string, rows [][]string) AssembleResult {
	result := AssembleResult{
		Table: &Table{
			Headers: headers,
			Rows:    make([][]any, len(rows)),
		},
	}

	for i, row := range rows {
		cells := make([]any, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = row[j]
			} else {
				cells[j] = ""
			}
		}
		if len(row) < len(headers) {
			result.PaddedRows++
		}
		if len(row) > len(headers) {
			result.TruncatedRows++
		}
		result.Table.Rows[i] = cells
	}

	return result
}

// ColumnIndex returns the position of the named column, or -1 when the
// table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// FormatCell renders a cell value the way the exporters write it:
// strings verbatim, integers in base 10, floats in the shortest 'g'
// representation.
func FormatCell(v any) string {
	switch cell := v.(type) {
	case string:
		return cell
	case int64:
		return strconv.FormatInt(cell, 10)
	case float64:
		return strconv.FormatFloat(cell, 'g', -1, 64)
	default:
		return fmt.Sprint(cell)
	}
}

// Records renders the table as a header record followed by one record
// per row, the shape expected by csv.Writer.WriteAll.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Headers)
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = FormatCell(cell)
		}
		records = append(records, record)
	}
	return records
}
