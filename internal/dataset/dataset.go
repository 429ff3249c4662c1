// Package dataset defines the in-memory tabular representation produced by
// the CSV parser and consumed by the storage backends: an ordered list of
// column names plus row-major cell values.
//
// Cells are strings as read from the file, or nil for empty fields. Kind
// inference and coercion turn columns that look uniformly numeric or boolean
// into typed values so that generated table schemas line up with the data.
package dataset

import (
	"strconv"
	"strings"
)

// Dataset is a parsed tabular file: ordered columns and ordered rows.
// Rows are aligned with Columns; every row has exactly len(Columns) cells.
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of data rows (the header is not counted).
func (d *Dataset) RowCount() int { return len(d.Rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.Columns) }

// Head returns up to n leading rows for operator preview. The returned slice
// aliases the dataset; callers must not mutate it.
func (d *Dataset) Head(n int) [][]any {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// InferKinds sniffs a logical kind per column from the cell values:
// "int" when every non-empty cell parses as an integer, "float" when every
// non-empty cell parses as a number, "bool" for true/false columns, and
// "string" otherwise. Columns with no non-empty cells stay "string".
//
// The result feeds each backend's type mapping; it deliberately stops at what
// a tabular-parsing library gives by default (no dates, no precision tuning).
func (d *Dataset) InferKinds() map[string]string {
	kinds := make(map[string]string, len(d.Columns))
	for i, col := range d.Columns {
		kinds[col] = inferColumnKind(d.Rows, i)
	}
	return kinds
}

func inferColumnKind(rows [][]any, idx int) string {
	var seen bool
	isInt, isFloat, isBool := true, true, true

	for _, row := range rows {
		cell, ok := row[idx].(string)
		if !ok || cell == "" {
			continue
		}
		seen = true

		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			switch strings.ToLower(cell) {
			case "true", "false":
			default:
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			return "string"
		}
	}

	switch {
	case !seen:
		return "string"
	case isInt:
		return "int"
	case isFloat:
		return "float"
	case isBool:
		return "bool"
	default:
		return "string"
	}
}

// Coerce converts cell values in place according to the inferred kinds:
// "int" cells become int64, "float" float64, "bool" bool. Unparseable cells
// (which can only appear if kinds did not come from InferKinds on the same
// data) are left as strings. nil cells stay nil.
func (d *Dataset) Coerce(kinds map[string]string) {
	for i, col := range d.Columns {
		kind := kinds[col]
		if kind == "" || kind == "string" {
			continue
		}
		for _, row := range d.Rows {
			cell, ok := row[i].(string)
			if !ok || cell == "" {
				continue
			}
			switch kind {
			case "int":
				if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
					row[i] = v
				}
			case "float":
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					row[i] = v
				}
			case "bool":
				if v, err := strconv.ParseBool(strings.ToLower(cell)); err == nil {
					row[i] = v
				}
			}
		}
	}
}
