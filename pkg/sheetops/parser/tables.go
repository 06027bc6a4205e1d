package parser

import (
	"fmt"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectTables detects table-like regions in a sheet.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
func DetectTables(f *excelize.File, sheetName string, params TableDetectionParams) ([]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	bounds, ok := dataBounds(rows)
	if !ok {
		return nil, nil
	}

	totalCells := (bounds.R2 - bounds.R1 + 1) * (bounds.C2 - bounds.C1 + 1)
	nonEmptyCells := countNonEmptyCells(rows, bounds)

	if nonEmptyCells < params.MinNonemptyCells {
		return nil, nil
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return nil, nil
	}

	return []string{bounds.Ref}, nil
}

// DataBounds returns the bounding box of the non-empty cells of a sheet.
// The second result is false when the sheet holds no data.
func DataBounds(f *excelize.File, sheetName string) (models.CellRange, bool, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.CellRange{}, false, err
	}
	bounds, ok := dataBounds(rows)
	return bounds, ok, nil
}

// dataBounds finds the bounding box of non-empty cells.
func dataBounds(rows [][]string) (models.CellRange, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	if minRow < 0 {
		return models.CellRange{}, false
	}

	r := models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}
	r.Ref = RangeRef(r)
	return r, true
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, b models.CellRange) int {
	count := 0
	for rowIdx := b.R1 - 1; rowIdx < b.R2 && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := b.C1 - 1; colIdx < b.C2 && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}

// RangeRef formats a range in A1 notation, e.g. "A1:D10".
func RangeRef(r models.CellRange) string {
	startCell, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	endCell, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
