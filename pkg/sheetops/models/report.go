package models

// StepReport summarizes a single operation applied to a workbook.
type StepReport struct {
	// Op is the operation name (sort, filter, header, format, autofit, merge).
	Op string `json:"op"`
	// Sheets lists the sheets the operation touched.
	Sheets []string `json:"sheets,omitempty"`
	// Merged lists the ranges merged by a merge step.
	Merged []CellRange `json:"merged,omitempty"`
}

// Report is the outcome of processing one workbook.
type Report struct {
	// RunID uniquely identifies this processing run.
	RunID string `json:"run_id"`
	// Job is the job name, if the run came from a job file.
	Job string `json:"job,omitempty"`
	// Input is the source workbook path.
	Input string `json:"input"`
	// Output is the written workbook path.
	Output string `json:"output,omitempty"`
	// Success reports whether every step completed.
	Success bool `json:"success"`
	// Error is the failure message when Success is false.
	Error string `json:"error,omitempty"`
	// Duration is the wall time spent on the workbook.
	Duration string `json:"duration"`
	// Steps lists the applied steps in order.
	Steps []StepReport `json:"steps,omitempty"`
}
