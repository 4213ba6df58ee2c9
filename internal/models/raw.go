package models

import "database/sql"

// RawTable is the untyped tabular result of the bulk load query, kept
// exactly as the source delivered it: column labels as selected, cells as
// nullable strings, rows in query order (newest first).
type RawTable struct {
	Columns []string
	Rows    [][]sql.NullString
}

// ColumnIndex returns the position of a raw column label.
func (t *RawTable) ColumnIndex(label string) (int, bool) {
	for i, c := range t.Columns {
		if c == label {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of raw rows.
func (t *RawTable) Len() int {
	return len(t.Rows)
}
