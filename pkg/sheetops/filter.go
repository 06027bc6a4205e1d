package sheetops

import (
	"fmt"
	"slices"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// FilterOptions configures Filter.
type FilterOptions struct {
	// SkipRows is the number of leading rows dropped before the header row.
	SkipRows int
	// Column is the zero-based column tested against Values.
	Column int
	// Values lists the cell texts a data row must match to be kept.
	Values []string
	// Sheets limits the output to the named sheets. Empty keeps every sheet.
	Sheets []string
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultFilterOptions returns options that drop one leading row and keep
// rows whose first column is switch1 or switch2.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		SkipRows: 1,
		Column:   0,
		Values:   []string{"switch1", "switch2"},
	}
}

// Filter builds a new workbook holding, for each selected sheet of src, the
// header row (the first row after SkipRows) followed by the data rows whose
// Column text is one of Values. Cells are compared by their displayed text.
// The caller owns the returned file and must close it.
func Filter(src *excelize.File, opts FilterOptions) (*excelize.File, error) {
	logger := nopIfNil(opts.Logger)

	if opts.Column < 0 || opts.SkipRows < 0 {
		return nil, fmt.Errorf("%w: column %d, skip rows %d", ErrInvalidInput, opts.Column, opts.SkipRows)
	}

	sheets, err := selectSheets(src, opts.Sheets)
	if err != nil {
		return nil, err
	}

	out := excelize.NewFile()
	defaultSheet := out.GetSheetList()[0]
	keepDefault := false

	for _, sheet := range sheets {
		if sheet == defaultSheet {
			keepDefault = true
		} else if _, err := out.NewSheet(sheet); err != nil {
			out.Close()
			return nil, NewOperationError(sheet, ComponentFilter, err)
		}

		kept, err := filterSheet(src, out, sheet, opts)
		if err != nil {
			out.Close()
			return nil, NewOperationError(sheet, ComponentFilter, err)
		}
		logger.Info("filtered sheet", zap.String("sheet", sheet), zap.Int("kept", kept))
	}

	if !keepDefault && len(sheets) > 0 {
		if err := out.DeleteSheet(defaultSheet); err != nil {
			out.Close()
			return nil, err
		}
	}
	// new sheets are appended after the default one; restore source order
	if keepDefault {
		for _, sheet := range sheets[:slices.Index(sheets, defaultSheet)] {
			if err := out.MoveSheet(sheet, defaultSheet); err != nil {
				out.Close()
				return nil, err
			}
		}
	}
	out.SetActiveSheet(0)
	return out, nil
}

// filterSheet streams the header and matching rows of sheet into out and
// returns the number of data rows kept.
func filterSheet(src, out *excelize.File, sheet string, opts FilterOptions) (int, error) {
	rows, err := src.Rows(sheet)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	sw, err := out.NewStreamWriter(sheet)
	if err != nil {
		return 0, err
	}

	srcRow, outRow, kept := 0, 1, 0
	for rows.Next() {
		srcRow++
		if srcRow <= opts.SkipRows {
			continue
		}
		cols, err := rows.Columns()
		if err != nil {
			return kept, fmt.Errorf("read row %d: %w", srcRow, err)
		}

		isHeader := srcRow == opts.SkipRows+1
		if !isHeader {
			if opts.Column >= len(cols) || !slices.Contains(opts.Values, cols[opts.Column]) {
				continue
			}
			kept++
		}

		values := make([]interface{}, len(cols))
		for i, c := range cols {
			values[i] = parser.ParseValue(c)
		}
		cell, _ := excelize.CoordinatesToCellName(1, outRow)
		if err := sw.SetRow(cell, values); err != nil {
			return kept, fmt.Errorf("write row %d: %w", outRow, err)
		}
		outRow++
	}
	if err := rows.Error(); err != nil {
		return kept, err
	}
	return kept, sw.Flush()
}
