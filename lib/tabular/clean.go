package tabular

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
)

// FillRule replaces a sentinel value in one column with a literal
// replacement string.
type FillRule struct {
	Column  string `json:"column"`
	Match   string `json:"match"`
	Replace string `json:"replace"`
}

// Rules is the declarative cleaning configuration for a table. The
// steps run in a fixed order: renames, sentinel fills, percent columns,
// comma columns, then the plain casts. Renames run first so every other
// rule targets post-rename column names; fills run before
// percent-stripping so substituted cells are stripped like the rest.
type Rules struct {
	Renames        map[string]string `json:"renames"`
	Fill           []FillRule        `json:"fill"`
	PercentColumns []string          `json:"percent_columns"`
	CommaColumns   []string          `json:"comma_columns"`
	IntColumns     []string          `json:"int_columns"`
	FloatColumns   []string          `json:"float_columns"`
}

// Clean applies the rule set in order, mutating the table in place.
// A cell of a designated numeric column that does not parse after
// symbol stripping is a fatal error; after a nil return every such
// column holds only int64 or float64 values.
func (t *Table) Clean(rules Rules) error {
	t.rename(rules.Renames)

	for _, fill := range rules.Fill {
		t.fill(fill)
	}

	for _, name := range rules.PercentColumns {
		if err := t.castFloat(name, "%"); err != nil {
			return err
		}
	}
	for _, name := range rules.CommaColumns {
		if err := t.castInt(name, ","); err != nil {
			return err
		}
	}
	for _, name := range rules.IntColumns {
		if err := t.castInt(name, ""); err != nil {
			return err
		}
	}
	for _, name := range rules.FloatColumns {
		if err := t.castFloat(name, ""); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) rename(renames map[string]string) {
	for old, updated := range renames {
		idx := t.ColumnIndex(old)
		if idx < 0 {
			// a missing rename target is a no-op, but log it with the
			// closest header so schema drift on the page is visible
			slog.Warn(
				"rename target not found",
				"column", old,
				"closest", t.closestHeader(old),
			)
			continue
		}
		t.Headers[idx] = updated
	}
}

func (t *Table) closestHeader(name string) string {
	closest := ""
	var similarity float64
	for _, h := range t.Headers {
		sim := matchr.JaroWinkler(name, h, false)
		if sim > similarity {
			similarity = sim
			closest = h
		}
	}
	return closest
}

func (t *Table) fill(rule FillRule) {
	idx := t.ColumnIndex(rule.Column)
	if idx < 0 {
		slog.Warn(
			"fill target not found",
			"column", rule.Column,
			"closest", t.closestHeader(rule.Column),
		)
		return
	}
	for _, row := range t.Rows {
		if cell, ok := row[idx].(string); ok && cell == rule.Match {
			row[idx] = rule.Replace
		}
	}
}

func (t *Table) castFloat(name, strip string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		slog.Warn("float column not found", "column", name, "closest", t.closestHeader(name))
		return nil
	}
	for i, row := range t.Rows {
		cell := FormatCell(row[idx])
		if strip != "" {
			cell = strings.ReplaceAll(cell, strip, "")
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("column %q row %d: parse %q as float: %w", name, i, cell, err)
		}
		row[idx] = value
	}
	return nil
}

func (t *Table) castInt(name, strip string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		slog.Warn("integer column not found", "column", name, "closest", t.closestHeader(name))
		return nil
	}
	for i, row := range t.Rows {
		cell := FormatCell(row[idx])
		if strip != "" {
			cell = strings.ReplaceAll(cell, strip, "")
		}
		value, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return fmt.Errorf("column %q row %d: parse %q as integer: %w", name, i, cell, err)
		}
		row[idx] = value
	}
	return nil
}
