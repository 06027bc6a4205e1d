package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Rows contains extracted rows with cell values and links.
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// Runs contains the mergeable runs detected for the requested column pair.
	Runs []Run `json:"runs,omitempty"`
	// MergedCells contains the merged ranges already present on the sheet.
	MergedCells []string `json:"merged_cells,omitempty"`
}
