package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows.
func ExtractCells(f *excelize.File, sheetName string, includeLinks bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]models.Value)
		linkMap := make(map[string]string)
		hasData := false

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			hasData = true
			colStr := strconv.Itoa(colIdx + 1) // 1-based column index as string

			cellMap[colStr] = ParseValue(cellValue)

			if includeLinks {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}
		}

		if hasData {
			cellRow := models.CellRow{
				R: rowNum,
				C: cellMap,
			}
			if includeLinks && len(linkMap) > 0 {
				cellRow.Links = linkMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// ReadTable reads a sheet into a rectangular table, skipping the first
// skipRows rows. Short rows are padded with nil up to the widest row, and
// empty cells are nil. opts are passed to GetRows; RawCellValue reads
// values without number formats applied.
func ReadTable(f *excelize.File, sheetName string, skipRows int, opts ...excelize.Options) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, opts...)
	if err != nil {
		return nil, err
	}
	return buildTable(rows, skipRows, func(_, _ int, raw string) (models.Value, error) {
		return ParseValue(raw), nil
	})
}

// ReadTypedTable is ReadTable for rewriting cells in place. It reads raw
// values and converts them by the stored cell type instead of by their
// text: booleans stay bool, numeric cells become int64 or float64 whatever
// notation they are stored in, and every other cell stays a string.
func ReadTypedTable(f *excelize.File, sheetName string, skipRows int) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return buildTable(rows, skipRows, func(row, col int, raw string) (models.Value, error) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return nil, err
		}
		cellType, err := f.GetCellType(sheetName, cell)
		if err != nil {
			return nil, err
		}
		return TypedValue(raw, cellType), nil
	})
}

// buildTable converts rows below skipRows into a padded table. convert is
// called with 1-based sheet coordinates for every non-empty cell.
func buildTable(rows [][]string, skipRows int, convert func(row, col int, raw string) (models.Value, error)) (*models.Table, error) {
	skipRows = min(max(skipRows, 0), len(rows))
	rows = rows[skipRows:]

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	table := &models.Table{
		Rows:     make([][]models.Value, len(rows)),
		FirstRow: skipRows + 1,
	}
	for i, row := range rows {
		values := make([]models.Value, width)
		for j, cell := range row {
			if cell == "" {
				continue
			}
			v, err := convert(table.SheetRow(i+1), j+1, cell)
			if err != nil {
				return nil, err
			}
			values[j] = v
		}
		table.Rows[i] = values
	}
	return table, nil
}

// TypedValue converts a raw cell value according to its stored type.
func TypedValue(raw string, cellType excelize.CellType) models.Value {
	if raw == "" {
		return nil
	}
	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, nil for an empty
// string, or the original string. Text is only converted when the number
// formats back to the same text, so "00123" and "1.50" stay strings.
func ParseValue(s string) models.Value {
	if s == "" {
		return nil
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if strconv.FormatFloat(f, 'f', -1, 64) == s || strconv.FormatFloat(f, 'g', -1, 64) == s {
			return f
		}
	}
	// Return as string
	return s
}
