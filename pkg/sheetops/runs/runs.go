// Package runs detects contiguous runs of rows that hold the same value in
// both a grouping column and a target column. The runs are the ranges a
// caller merges on the target column.
package runs

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
)

// ErrInvalidInput indicates a table or column selector the scanner cannot work with.
var ErrInvalidInput = errors.New("invalid input")

// MinRunLen is the shortest run that is emitted. A single cell merge is a no-op.
const MinRunLen = 2

// key is the composite value a run is grouped by.
type key struct {
	group  models.Value
	target models.Value
}

// Validate checks that t is rectangular, that groupCol and targetCol are valid
// zero-based indexes into every row, and that the selected values are comparable.
// An empty table is valid for any non-negative selectors.
func Validate(t *models.Table, groupCol, targetCol int) error {
	if groupCol < 0 || targetCol < 0 {
		return fmt.Errorf("%w: negative column selector (group=%d, target=%d)", ErrInvalidInput, groupCol, targetCol)
	}
	if t.Len() == 0 {
		return nil
	}

	width := len(t.Rows[0])
	if groupCol >= width || targetCol >= width {
		return fmt.Errorf("%w: column selector out of range (group=%d, target=%d, width=%d)",
			ErrInvalidInput, groupCol, targetCol, width)
	}

	for i, row := range t.Rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidInput, i+1, len(row), width)
		}
		for _, col := range [2]int{groupCol, targetCol} {
			if v := row[col]; v != nil && !reflect.ValueOf(v).Comparable() {
				return fmt.Errorf("%w: row %d column %d holds non-comparable %T", ErrInvalidInput, i+1, col, v)
			}
		}
	}
	return nil
}

// Scan returns the runs of t in ascending order. Columns are zero-based,
// run rows are 1-based table rows. Empty cells (nil or "") compare equal to
// each other and unequal to any present value.
//
// The table is validated before Scan returns; the sequence itself cannot fail.
// The table must not be modified while the sequence is being consumed.
func Scan(t *models.Table, groupCol, targetCol int) (iter.Seq[models.Run], error) {
	if err := Validate(t, groupCol, targetCol); err != nil {
		return nil, err
	}

	return func(yield func(models.Run) bool) {
		n := t.Len()
		if n == 0 {
			return
		}

		start := 1
		current := keyAt(t, 1, groupCol, targetCol)
		for r := 2; r <= n; r++ {
			k := keyAt(t, r, groupCol, targetCol)
			if k == current {
				continue
			}
			if r-start >= MinRunLen && !yield(models.Run{Start: start, End: r - 1}) {
				return
			}
			start, current = r, k
		}

		// close the run still open after the last row
		if n-start+1 >= MinRunLen {
			yield(models.Run{Start: start, End: n})
		}
	}, nil
}

// Collect scans t and returns all runs as a slice.
func Collect(t *models.Table, groupCol, targetCol int) ([]models.Run, error) {
	seq, err := Scan(t, groupCol, targetCol)
	if err != nil {
		return nil, err
	}
	var out []models.Run
	for run := range seq {
		out = append(out, run)
	}
	return out, nil
}

func keyAt(t *models.Table, r, groupCol, targetCol int) key {
	row := t.Rows[r-1]
	return key{group: normalize(row[groupCol]), target: normalize(row[targetCol])}
}

// normalize folds the empty string into nil so both spellings of an empty cell group together.
func normalize(v models.Value) models.Value {
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}
