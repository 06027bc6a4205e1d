package models

// CellRange represents inclusive cell coordinate bounds on a sheet.
type CellRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
	// Ref is the A1-style reference of the range (e.g. "C2:C5").
	Ref string `json:"ref,omitempty"`
}
