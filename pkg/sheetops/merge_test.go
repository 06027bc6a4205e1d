package sheetops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func mergedRefs(t *testing.T, f *excelize.File, sheet string) []string {
	t.Helper()
	cells, err := f.GetMergeCells(sheet, true)
	require.NoError(t, err)
	var refs []string
	for _, c := range cells {
		refs = append(refs, c.GetStartAxis()+":"+c.GetEndAxis())
	}
	return refs
}

func portTable() [][]interface{} {
	return [][]interface{}{
		{"host", "group", "vlan"},
		{"sw1", "A", 10},
		{"sw1", "A", 10},
		{"sw2", "A", 10},
		{"sw3", "B", 20},
		{"sw4", "B", 30},
		{"sw5", "B", 30},
	}
}

func TestMergeRuns(t *testing.T) {
	f := newBook(t, []string{"Ports"}, map[string][][]interface{}{"Ports": portTable()})

	opts := DefaultMergeOptions()
	opts.HeaderRows = 1
	merged, err := MergeRuns(f, opts)
	require.NoError(t, err)

	var refs []string
	for _, r := range merged {
		refs = append(refs, r.Ref)
		assert.Equal(t, 3, r.C1)
		assert.Equal(t, 3, r.C2)
	}
	assert.Equal(t, []string{"C2:C4", "C6:C7"}, refs)
	assert.ElementsMatch(t, refs, mergedRefs(t, f, "Ports"))
}

func TestMergeRunsDefaultsToActiveSheet(t *testing.T) {
	f := newBook(t, []string{"Summary", "Ports"}, map[string][][]interface{}{
		"Summary": {{"total", 7}, {"total", 7}},
		"Ports":   portTable(),
	})
	idx, err := f.GetSheetIndex("Ports")
	require.NoError(t, err)
	f.SetActiveSheet(idx)

	opts := DefaultMergeOptions()
	opts.HeaderRows = 1
	merged, err := MergeRuns(f, opts)
	require.NoError(t, err)

	assert.Len(t, merged, 2)
	assert.ElementsMatch(t, []string{"C2:C4", "C6:C7"}, mergedRefs(t, f, "Ports"))
	assert.Empty(t, mergedRefs(t, f, "Summary"))
}

func TestMergeRunsWithoutHeader(t *testing.T) {
	rows := [][]interface{}{
		{"x", "A", 1},
		{"x", "A", 2},
		{"x", "A", 2},
	}
	f := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": rows})

	merged, err := MergeRuns(f, DefaultMergeOptions())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "C2:C3", merged[0].Ref)
}

func TestMergeRunsDryRun(t *testing.T) {
	f := newBook(t, []string{"Ports"}, map[string][][]interface{}{"Ports": portTable()})

	opts := DefaultMergeOptions()
	opts.HeaderRows = 1
	opts.DryRun = true
	merged, err := MergeRuns(f, opts)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
	assert.Empty(t, mergedRefs(t, f, "Ports"))
}

func TestMergeRunsNoRuns(t *testing.T) {
	rows := [][]interface{}{
		{"x", "A", 1},
		{"x", "B", 1},
		{"x", "A", 1},
	}
	f := newBook(t, []string{"Sheet1"}, map[string][][]interface{}{"Sheet1": rows})

	merged, err := MergeRuns(f, DefaultMergeOptions())
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestMergeRunsErrors(t *testing.T) {
	f := newBook(t, []string{"Ports"}, map[string][][]interface{}{"Ports": portTable()})

	t.Run("missing sheet", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.Sheet = "Nope"
		_, err := MergeRuns(f, opts)
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})

	t.Run("target beyond table", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.TargetCol = 7
		_, err := MergeRuns(f, opts)
		require.ErrorIs(t, err, ErrInvalidInput)

		var opErr *OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "Ports", opErr.SheetName)
		assert.Equal(t, ComponentMerge, opErr.Component)
	})

	t.Run("negative column", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.GroupCol = -1
		_, err := MergeRuns(f, opts)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
