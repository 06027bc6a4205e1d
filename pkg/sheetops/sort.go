package sheetops

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SortOptions configures Sort.
type SortOptions struct {
	// Columns lists header names to sort by, in priority order. Names not
	// present in a sheet's header are ignored. Empty sorts by every column.
	Columns []string
	// Sheets limits sorting to the named sheets. Empty sorts every sheet.
	Sheets []string
	// Descending reverses the order. Empty cells stay last either way.
	Descending bool
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// Sort sorts the data rows below the header row of each selected sheet.
// The sort is stable. Numbers sort before text and text before booleans;
// numbers compare by exact decimal value and text compares bytewise.
// Cells keep their stored type: booleans stay booleans and numbers stay
// numbers whatever notation the file uses. Sheets that are not selected
// are left untouched. It returns the names of the sorted sheets.
func Sort(f *excelize.File, opts SortOptions) ([]string, error) {
	logger := nopIfNil(opts.Logger)

	sheets, err := selectSheets(f, opts.Sheets)
	if err != nil {
		return nil, err
	}

	var sorted []string
	for _, sheet := range sheets {
		ok, err := sortSheet(f, sheet, opts, logger)
		if err != nil {
			return sorted, NewOperationError(sheet, ComponentSort, err)
		}
		if ok {
			sorted = append(sorted, sheet)
		}
	}
	return sorted, nil
}

func sortSheet(f *excelize.File, sheet string, opts SortOptions, logger *zap.Logger) (bool, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	header := rows[0]

	table, err := parser.ReadTypedTable(f, sheet, 1)
	if err != nil {
		return false, err
	}
	width := max(len(header), table.Width())

	keys := sortKeys(header, width, opts.Columns)
	if len(keys) == 0 {
		logger.Warn("no sort columns found in header", zap.String("sheet", sheet), zap.Strings("columns", opts.Columns))
		return false, nil
	}

	data := table.Rows
	slices.SortStableFunc(data, func(a, b []models.Value) int {
		return compareRows(a, b, keys, opts.Descending)
	})

	for i, row := range data {
		values := make([]interface{}, width)
		copy(values, row)
		cell, _ := excelize.CoordinatesToCellName(1, table.SheetRow(i+1))
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return false, fmt.Errorf("write row %d: %w", table.SheetRow(i+1), err)
		}
	}

	logger.Info("sorted sheet", zap.String("sheet", sheet), zap.Int("rows", len(data)), zap.Ints("keys", keys))
	return true, nil
}

// sortKeys maps header names to zero-based column indexes. With no names
// every column up to width is a key, left to right.
func sortKeys(header []string, width int, names []string) []int {
	if len(names) == 0 {
		keys := make([]int, width)
		for i := range keys {
			keys[i] = i
		}
		return keys
	}

	var keys []int
	for _, name := range names {
		idx := slices.IndexFunc(header, func(h string) bool {
			return strings.TrimSpace(h) == strings.TrimSpace(name)
		})
		if idx >= 0 && !slices.Contains(keys, idx) {
			keys = append(keys, idx)
		}
	}
	return keys
}

func compareRows(a, b []models.Value, keys []int, descending bool) int {
	for _, k := range keys {
		va, vb := valueAt(a, k), valueAt(b, k)
		switch {
		case va == nil && vb == nil:
			continue
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := compareValues(va, vb)
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func valueAt(row []models.Value, i int) models.Value {
	if i < len(row) {
		return row[i]
	}
	return nil
}

// compareValues orders two non-nil cell values the way Excel does:
// numbers, then text, then booleans with false before true.
func compareValues(a, b models.Value) int {
	da, aNum := toDecimal(a)
	db, bNum := toDecimal(b)
	switch {
	case aNum && bNum:
		return da.Cmp(db)
	case aNum:
		return -1
	case bNum:
		return 1
	}

	ba, aBool := a.(bool)
	bb, bBool := b.(bool)
	switch {
	case aBool && bBool:
		return cmp.Compare(boolRank(ba), boolRank(bb))
	case aBool:
		return 1
	case bBool:
		return -1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toDecimal(v models.Value) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	}
	return decimal.Decimal{}, false
}
