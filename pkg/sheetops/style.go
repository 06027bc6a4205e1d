package sheetops

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// restyler derives new cell styles from existing ones so an operation can
// change one aspect of a cell's style (border, font, alignment) and keep the
// rest. Each source style ID is derived once per restyler.
type restyler struct {
	f      *excelize.File
	mutate func(*excelize.Style)
	cache  map[int]int
}

func newRestyler(f *excelize.File, mutate func(*excelize.Style)) *restyler {
	return &restyler{f: f, mutate: mutate, cache: make(map[int]int)}
}

// derive returns the style ID produced by applying the mutation to styleID.
func (r *restyler) derive(styleID int) (int, error) {
	if id, ok := r.cache[styleID]; ok {
		return id, nil
	}
	style, err := r.f.GetStyle(styleID)
	if err != nil {
		return 0, fmt.Errorf("read style %d: %w", styleID, err)
	}
	r.mutate(style)
	id, err := r.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style from %d: %w", styleID, err)
	}
	r.cache[styleID] = id
	return id, nil
}

// apply restyles every cell in the inclusive range. Failing cells do not
// stop the walk; their errors are returned together.
func (r *restyler) apply(sheet string, c1, r1, c2, r2 int) error {
	var errs error
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			errs = multierr.Append(errs, r.applyCell(sheet, col, row))
		}
	}
	return errs
}

func (r *restyler) applyCell(sheet string, col, row int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	current, err := r.f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("cell %s: %w", cell, err)
	}
	id, err := r.derive(current)
	if err != nil {
		return fmt.Errorf("cell %s: %w", cell, err)
	}
	if err := r.f.SetCellStyle(sheet, cell, cell, id); err != nil {
		return fmt.Errorf("cell %s: %w", cell, err)
	}
	return nil
}
