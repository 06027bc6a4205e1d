package models

// Run is a maximal contiguous range of table rows sharing the same
// grouping and target values. Start and End are 1-based and inclusive.
type Run struct {
	// Start is the first row of the run.
	Start int `json:"start"`
	// End is the last row of the run.
	End int `json:"end"`
}

// Len returns the number of rows covered by the run.
func (r Run) Len() int {
	return r.End - r.Start + 1
}
