package sheetops

import (
	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/runs"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// MergeOptions configures MergeRuns.
type MergeOptions struct {
	// Sheet is the sheet to merge on. Empty selects the active sheet.
	Sheet string
	// GroupCol is the zero-based grouping column.
	GroupCol int
	// TargetCol is the zero-based column whose cells are merged.
	TargetCol int
	// HeaderRows is the number of leading rows excluded from the scan.
	HeaderRows int
	// DryRun reports the ranges without merging them.
	DryRun bool
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

// DefaultMergeOptions returns options merging column C grouped by column B.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		GroupCol:  1,
		TargetCol: 2,
	}
}

// MergeRuns merges the target column over every run of rows in which the
// grouping and target columns both repeat. It returns the merged ranges in
// ascending row order.
func MergeRuns(f *excelize.File, opts MergeOptions) ([]models.CellRange, error) {
	logger := nopIfNil(opts.Logger)

	sheet, err := ResolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}

	table, err := parser.ReadTable(f, sheet, opts.HeaderRows)
	if err != nil {
		return nil, NewOperationError(sheet, ComponentMerge, err)
	}

	seq, err := runs.Scan(table, opts.GroupCol, opts.TargetCol)
	if err != nil {
		return nil, NewOperationError(sheet, ComponentMerge, err)
	}

	col := opts.TargetCol + 1
	var merged []models.CellRange
	for run := range seq {
		r := models.CellRange{
			R1: table.SheetRow(run.Start),
			C1: col,
			R2: table.SheetRow(run.End),
			C2: col,
		}
		r.Ref = parser.RangeRef(r)

		if !opts.DryRun {
			topLeft, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
			bottomRight, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
			if err := f.MergeCell(sheet, topLeft, bottomRight); err != nil {
				return merged, NewOperationError(sheet, ComponentMerge, err)
			}
		}
		logger.Debug("merged run", zap.String("sheet", sheet), zap.String("range", r.Ref), zap.Bool("dry_run", opts.DryRun))
		merged = append(merged, r)
	}

	logger.Info("merge complete",
		zap.String("sheet", sheet),
		zap.Int("rows", table.Len()),
		zap.Int("ranges", len(merged)))
	return merged, nil
}
