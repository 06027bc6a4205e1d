package sheetops

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// HeaderOptions configures InjectHeader.
type HeaderOptions struct {
	// Header holds the cell texts of the new first row.
	Header []string
	// Sheets limits the change to the named sheets. Empty changes every sheet.
	Sheets []string
	// Logger receives progress output. Nil disables logging.
	Logger *zap.Logger
}

// InjectHeader inserts Header as a new first row on each selected sheet,
// shifting existing rows (and their merged cells) down by one.
func InjectHeader(f *excelize.File, opts HeaderOptions) ([]string, error) {
	logger := nopIfNil(opts.Logger)

	if len(opts.Header) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrInvalidInput)
	}

	sheets, err := selectSheets(f, opts.Sheets)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(opts.Header))
	for i, h := range opts.Header {
		values[i] = h
	}

	for i, sheet := range sheets {
		if err := f.InsertRows(sheet, 1, 1); err != nil {
			return sheets[:i], NewOperationError(sheet, ComponentHeader, err)
		}
		if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
			return sheets[:i], NewOperationError(sheet, ComponentHeader, err)
		}
		logger.Info("injected header", zap.String("sheet", sheet), zap.Int("columns", len(values)))
	}
	return sheets, nil
}
