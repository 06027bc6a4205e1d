package job

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetops-go/pkg/sheetops"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeInventory saves a workbook with a title row, a header row and
// device rows to dir/name.
func writeInventory(t *testing.T, dir, name string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"inventory export"},
		{"device", "group", "vlan"},
		{"switch1", "core", 10},
		{"router", "core", 10},
		{"switch2", "core", 10},
		{"switch1", "edge", 20},
		{"switch2", "edge", 20},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func pipeline() []Step {
	return []Step{
		{Filter: &FilterStep{SkipRows: 1, Column: "A", Values: []string{"switch1", "switch2"}}},
		{Sort: &SortStep{Columns: []string{"group"}}},
		{Merge: &MergeStep{Group: "B", Target: "C", HeaderRows: 1}},
		{Format: &FormatStep{}},
		{AutoFit: &AutoFitStep{}},
	}
}

func TestRunJob(t *testing.T) {
	dir := t.TempDir()
	in := writeInventory(t, dir, "in.xlsx")
	out := filepath.Join(dir, "out", "result.xlsx")

	r := NewRunner(1, zaptest.NewLogger(t))
	report := r.RunJob(context.Background(), Job{Name: "inv", Input: in, Output: out, Steps: pipeline()})

	require.True(t, report.Success, report.Error)
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.Duration)
	require.Len(t, report.Steps, 5)
	assert.Equal(t, "filter", report.Steps[0].Op)
	assert.Equal(t, []string{"Sheet1"}, report.Steps[0].Sheets)

	merged := report.Steps[2].Merged
	require.Len(t, merged, 2)
	assert.Equal(t, "C2:C3", merged[0].Ref)
	assert.Equal(t, "C4:C5", merged[1].Ref)

	f, err := sheetops.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "device", rows[0][0])
	cells, err := f.GetMergeCells("Sheet1", true)
	require.NoError(t, err)
	assert.Len(t, cells, 2)
}

func TestRunJobDryRun(t *testing.T) {
	dir := t.TempDir()
	in := writeInventory(t, dir, "in.xlsx")
	out := filepath.Join(dir, "out.xlsx")

	steps := []Step{{Merge: &MergeStep{Group: "B", Target: "C", HeaderRows: 2, DryRun: true}}}
	report := NewRunner(1, nil).RunJob(context.Background(), Job{Name: "dry", Input: in, Output: out, Steps: steps, DryRun: true})

	require.True(t, report.Success, report.Error)
	assert.Empty(t, report.Output)
	require.Len(t, report.Steps, 1)
	assert.Len(t, report.Steps[0].Merged, 2)
	assert.NoFileExists(t, out)
}

func TestRunJobStepFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeInventory(t, dir, "in.xlsx")
	out := filepath.Join(dir, "out.xlsx")

	steps := []Step{
		{AutoFit: &AutoFitStep{}},
		{Merge: &MergeStep{Group: "B", Target: "Z"}},
	}
	report := NewRunner(1, nil).RunJob(context.Background(), Job{Name: "bad", Input: in, Output: out, Steps: steps})

	assert.False(t, report.Success)
	assert.Contains(t, report.Error, "step 2 (merge)")
	assert.Len(t, report.Steps, 2)
	assert.NoFileExists(t, out)
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{Name: "a", Input: writeInventory(t, dir, "a.xlsx"), Output: filepath.Join(dir, "a-out.xlsx"), Steps: pipeline()},
		{Name: "missing", Input: filepath.Join(dir, "nope.xlsx"), Steps: pipeline()},
		{Name: "b", Input: writeInventory(t, dir, "b.xlsx"), Output: filepath.Join(dir, "b-out.xlsx"), Steps: pipeline()},
	}

	reports, err := NewRunner(2, zaptest.NewLogger(t)).Run(context.Background(), jobs)
	require.Error(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "a", reports[0].Job)
	assert.True(t, reports[0].Success)
	assert.False(t, reports[1].Success)
	assert.Contains(t, reports[1].Error, "file not found")
	assert.True(t, reports[2].Success)
	assert.FileExists(t, filepath.Join(dir, "a-out.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "b-out.xlsx"))

	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	var jobErr *Error
	require.ErrorAs(t, errs[0], &jobErr)
	assert.Equal(t, "missing", jobErr.Job)

	ids := map[string]bool{}
	for _, rep := range reports {
		ids[rep.RunID] = true
	}
	assert.Len(t, ids, 3)
}

func TestRunnerRunRejectsSharedWorkbook(t *testing.T) {
	dir := t.TempDir()
	in := writeInventory(t, dir, "book.xlsx")
	jobs := []Job{
		{Name: "h1", Input: in, Steps: []Step{{Header: &HeaderStep{Header: []string{"H1"}}}}},
		{Name: "h2", Input: in, Steps: []Step{{Header: &HeaderStep{Header: []string{"H2"}}}}},
	}

	reports, err := NewRunner(2, nil).Run(context.Background(), jobs)
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Nil(t, reports)

	f, err := sheetops.Open(in)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "inventory export", v)
}

func TestRunnerRunSharedInput(t *testing.T) {
	dir := t.TempDir()
	in := writeInventory(t, dir, "book.xlsx")
	outs := []string{filepath.Join(dir, "h1.xlsx"), filepath.Join(dir, "h2.xlsx")}
	jobs := []Job{
		{Name: "h1", Input: in, Output: outs[0], Steps: []Step{{Header: &HeaderStep{Header: []string{"H1"}}}}},
		{Name: "h2", Input: in, Output: outs[1], Steps: []Step{{Header: &HeaderStep{Header: []string{"H2"}}}}},
	}

	_, err := NewRunner(2, nil).Run(context.Background(), jobs)
	require.NoError(t, err)

	for i, want := range []string{"H1", "H2"} {
		f, err := sheetops.Open(outs[i])
		require.NoError(t, err)
		v, err := f.GetCellValue("Sheet1", "A1")
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestRunnerRunCancelled(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.xlsx")
	jobs := []Job{{Name: "a", Input: writeInventory(t, dir, "a.xlsx"), Output: out, Steps: pipeline()}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := NewRunner(1, nil).Run(ctx, jobs)
	require.Error(t, err)
	assert.False(t, reports[0].Success)
	assert.Equal(t, context.Canceled.Error(), reports[0].Error)
	assert.NoFileExists(t, out)
}

func TestApplyUnknownStep(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, _, err := Apply(f, Step{}, nil)
	assert.ErrorIs(t, err, ErrInvalidJob)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(0, nil)
	assert.Equal(t, DefaultParallelism, r.Parallelism)
	assert.NotNil(t, r.Logger)
}
