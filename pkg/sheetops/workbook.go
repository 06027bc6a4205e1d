// Package sheetops applies sort, filter, header, formatting and cell merge
// operations to Excel workbooks.
package sheetops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Open opens the workbook at path.
func Open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return f, nil
}

// Save writes f to path, creating parent directories as needed.
func Save(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// selectSheets returns the sheets of f named in names, in workbook order.
// An empty names list selects every sheet.
func selectSheets(f *excelize.File, names []string) ([]string, error) {
	all := f.GetSheetList()
	if len(names) == 0 {
		return all, nil
	}
	for _, name := range names {
		if !slices.Contains(all, name) {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
		}
	}
	var selected []string
	for _, name := range all {
		if slices.Contains(names, name) {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// ResolveSheet returns name if it exists. An empty name selects the active
// sheet, or the first sheet when the workbook records no active one.
func ResolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		if active := f.GetSheetName(f.GetActiveSheetIndex()); active != "" {
			return active, nil
		}
		return list[0], nil
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return name, nil
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
