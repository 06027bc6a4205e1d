package sheetops

import (
	"fmt"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Border style indexes understood by excelize.
const (
	BorderNone   = 0
	BorderThin   = 1
	BorderMedium = 2
	BorderThick  = 5
)

// FormatOptions configures Format.
type FormatOptions struct {
	// Sheets limits formatting to the named sheets. Empty formats every sheet.
	Sheets []string
	// Range is an A1 range to format on every selected sheet. Empty formats
	// from A1 to the last used cell of each sheet.
	Range string
	// BorderStyle is the excelize border style drawn on all four sides.
	// BorderNone leaves borders unchanged.
	BorderStyle int
	// BorderColor is the hex RGB border color. Empty means black.
	BorderColor string
	// BoldHeader makes the first row of the range bold.
	BoldHeader bool
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultFormatOptions returns medium black borders with a bold header row.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		BorderStyle: BorderMedium,
		BoldHeader:  true,
	}
}

// Format draws borders around every cell of the range and makes its first
// row bold, keeping the rest of each cell's style. A failure on one cell or
// sheet does not stop the others; all failures are returned together.
// It returns the names of the formatted sheets.
func Format(f *excelize.File, opts FormatOptions) ([]string, error) {
	logger := nopIfNil(opts.Logger)

	sheets, err := selectSheets(f, opts.Sheets)
	if err != nil {
		return nil, err
	}

	var fixed *models.CellRange
	if opts.Range != "" {
		r, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fixed = &r
	}

	color := opts.BorderColor
	if color == "" {
		color = "000000"
	}
	borders := newRestyler(f, func(s *excelize.Style) {
		s.Border = []excelize.Border{
			{Type: "left", Color: color, Style: opts.BorderStyle},
			{Type: "right", Color: color, Style: opts.BorderStyle},
			{Type: "top", Color: color, Style: opts.BorderStyle},
			{Type: "bottom", Color: color, Style: opts.BorderStyle},
		}
	})
	bold := newRestyler(f, func(s *excelize.Style) {
		if s.Font == nil {
			s.Font = &excelize.Font{}
		}
		s.Font.Bold = true
	})

	var errs error
	var done []string
	for _, sheet := range sheets {
		r, ok, err := rangeFor(f, sheet, fixed)
		if err != nil {
			errs = multierr.Append(errs, NewOperationError(sheet, ComponentFormat, err))
			continue
		}
		if !ok {
			logger.Debug("sheet is empty, skipping", zap.String("sheet", sheet))
			continue
		}

		var sheetErr error
		if opts.BorderStyle != BorderNone {
			sheetErr = multierr.Append(sheetErr, borders.apply(sheet, r.C1, r.R1, r.C2, r.R2))
		}
		if opts.BoldHeader {
			sheetErr = multierr.Append(sheetErr, bold.apply(sheet, r.C1, r.R1, r.C2, r.R1))
		}
		if sheetErr != nil {
			errs = multierr.Append(errs, NewOperationError(sheet, ComponentFormat, sheetErr))
			logger.Warn("formatting incomplete", zap.String("sheet", sheet), zap.Int("failures", len(multierr.Errors(sheetErr))))
		}
		done = append(done, sheet)
		logger.Info("formatted sheet", zap.String("sheet", sheet), zap.String("range", r.Ref))
	}
	return done, errs
}

// rangeFor returns fixed when set, otherwise the range from A1 to the last
// used cell of sheet. The second result is false for an empty sheet.
func rangeFor(f *excelize.File, sheet string, fixed *models.CellRange) (models.CellRange, bool, error) {
	if fixed != nil {
		return *fixed, true, nil
	}
	bounds, ok, err := parser.DataBounds(f, sheet)
	if err != nil || !ok {
		return models.CellRange{}, false, err
	}
	r := models.CellRange{R1: 1, C1: 1, R2: bounds.R2, C2: bounds.C2}
	r.Ref = parser.RangeRef(r)
	return r, true, nil
}
