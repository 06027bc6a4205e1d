package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference like "$A$1:$D$10", "A1:D10" or a
// single cell "B2" into a CellRange. A sheet prefix ("'Sheet 1'!A1:B2") is
// ignored. The corners are normalized so R1 <= R2 and C1 <= C2.
func ParseRange(ref string) (models.CellRange, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.CellRange{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.CellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.CellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	r := models.CellRange{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}
	r.Ref = RangeRef(r)
	return r, nil
}

// ParseColumn converts a column given as a letter ("C") or a 1-based
// number ("3") into a 0-based index.
func ParseColumn(col string) (int, error) {
	col = strings.TrimSpace(col)
	if n, err := strconv.Atoi(col); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("invalid column %q: numbers start at 1", col)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", col, err)
	}
	return n - 1, nil
}
