package sheetops

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/runs"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a requested sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrInvalidInput indicates options or table contents an operation cannot work with.
var ErrInvalidInput = runs.ErrInvalidInput

// Operation components reported in OperationError.
const (
	ComponentSort    = "sort"
	ComponentFilter  = "filter"
	ComponentHeader  = "header"
	ComponentFormat  = "format"
	ComponentAutoFit = "autofit"
	ComponentMerge   = "merge"
)

// OperationError represents an error while applying an operation to a sheet.
type OperationError struct {
	SheetName string
	Component string // "sort", "filter", "header", "format", "autofit", "merge"
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s error in sheet %q: %v", e.Component, e.SheetName, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(sheetName, component string, err error) *OperationError {
	return &OperationError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
