package models

// Value is a single cell value: string, int64, float64, bool, or nil for an empty cell.
type Value = any

// Table is an ordered, row-major grid of cell values read from a sheet.
// Tables produced by the parser are rectangular; hand-built tables may not be,
// and consumers that need a rectangular shape must check it.
type Table struct {
	// Rows holds the cell values, one slice per row.
	Rows [][]Value `json:"rows"`
	// FirstRow is the sheet row (1-based) of Rows[0]. Zero is treated as 1.
	FirstRow int `json:"first_row,omitempty"`
}

// NewTable creates a table from rows whose first row sits on sheet row 1.
func NewTable(rows ...[]Value) *Table {
	return &Table{Rows: rows, FirstRow: 1}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the length of the widest row.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// SheetRow converts a 1-based table row index into a 1-based sheet row.
func (t *Table) SheetRow(r int) int {
	first := t.FirstRow
	if first < 1 {
		first = 1
	}
	return first + r - 1
}
