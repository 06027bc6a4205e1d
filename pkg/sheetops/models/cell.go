// Package models defines data structures shared by sheet operations.
package models

// CellRow represents a single non-empty row of cells with optional hyperlinks.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based, as string) to cell value.
	C map[string]Value `json:"c"`
	// Links maps column index to hyperlink URL (optional).
	Links map[string]string `json:"links,omitempty"`
}
