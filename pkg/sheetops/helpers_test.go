package sheetops

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newBook builds a workbook whose sheets hold the given rows starting at A1.
// Sheets are created in the order of names.
func newBook(t *testing.T, names []string, rows map[string][][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	return f
}

// column returns the displayed values of col (1-based) for rows 1..n.
func column(t *testing.T, f *excelize.File, sheet string, col, n int) []string {
	t.Helper()
	out := make([]string, n)
	for r := 1; r <= n; r++ {
		cell, err := excelize.CoordinatesToCellName(col, r)
		require.NoError(t, err)
		out[r-1], err = f.GetCellValue(sheet, cell)
		require.NoError(t, err)
	}
	return out
}

// styleOf returns the style of a single cell.
func styleOf(t *testing.T, f *excelize.File, sheet, cell string) *excelize.Style {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	return style
}
