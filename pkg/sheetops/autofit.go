package sheetops

import (
	"strings"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AutoFitOptions configures AutoFit.
type AutoFitOptions struct {
	// Sheets limits fitting to the named sheets. Empty fits every sheet.
	Sheets []string
	// Padding is added to the widest cell text of each column.
	Padding int
	// Center aligns every used cell horizontally and vertically.
	Center bool
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultAutoFitOptions returns a padding of two characters with centering.
func DefaultAutoFitOptions() AutoFitOptions {
	return AutoFitOptions{
		Padding: parser.DefaultWidthPadding,
		Center:  true,
	}
}

// AutoFit sets each used column's width to its widest displayed text plus
// padding and optionally centers the content of every used cell. Failures
// are collected per sheet and returned together. It returns the names of
// the fitted sheets.
func AutoFit(f *excelize.File, opts AutoFitOptions) ([]string, error) {
	logger := nopIfNil(opts.Logger)

	sheets, err := selectSheets(f, opts.Sheets)
	if err != nil {
		return nil, err
	}

	center := newRestyler(f, func(s *excelize.Style) {
		if s.Alignment == nil {
			s.Alignment = &excelize.Alignment{}
		}
		s.Alignment.Horizontal = "center"
		s.Alignment.Vertical = "center"
	})

	var errs error
	var done []string
	for _, sheet := range sheets {
		if err := fitSheet(f, sheet, opts, center); err != nil {
			errs = multierr.Append(errs, NewOperationError(sheet, ComponentAutoFit, err))
			continue
		}
		done = append(done, sheet)
		logger.Info("fitted sheet", zap.String("sheet", sheet))
	}
	return done, errs
}

func fitSheet(f *excelize.File, sheet string, opts AutoFitOptions, center *restyler) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}

	widths := columnWidths(rows)
	var errs error
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, f.SetColWidth(sheet, name, name, parser.FitWidth(w, opts.Padding)))
	}

	if opts.Center && len(widths) > 0 {
		errs = multierr.Append(errs, center.apply(sheet, 1, 1, len(widths), len(rows)))
	}
	return errs
}

// columnWidths returns the widest display width of each column. Multi-line
// cells are measured by their longest line.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, make([]int, i-len(widths)+1)...)
			}
			for _, line := range strings.Split(cell, "\n") {
				if w := parser.TextWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}
