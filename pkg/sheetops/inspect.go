package sheetops

import (
	"path/filepath"

	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/runs"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// InspectOptions configures Inspect.
type InspectOptions struct {
	// IncludeLinks adds cell hyperlinks to the extracted rows.
	IncludeLinks bool
	// Runs, when set, reports the runs MergeRuns would merge with these
	// options on every sheet (or only on Runs.Sheet when it is named).
	Runs *MergeOptions
}

// Inspect extracts the rows, table candidates and merged cells of every
// sheet in the workbook at path, plus detected runs when requested.
// Sheets that fail are reported in the returned error; the others are
// still included in the result.
func Inspect(path string, opts InspectOptions) (*models.WorkbookData, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return InspectFile(f, filepath.Base(path), opts)
}

// InspectFile is Inspect on an open workbook.
func InspectFile(f *excelize.File, bookName string, opts InspectOptions) (*models.WorkbookData, error) {
	sheetList := f.GetSheetList()
	sheets := make(map[string]models.SheetData, len(sheetList))

	var errs error
	for _, sheetName := range sheetList {
		data, err := inspectSheet(f, sheetName, opts)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		sheets[sheetName] = data
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetNames: sheetList,
		Sheets:     sheets,
	}, errs
}

func inspectSheet(f *excelize.File, sheetName string, opts InspectOptions) (models.SheetData, error) {
	var data models.SheetData

	rows, err := parser.ExtractCells(f, sheetName, opts.IncludeLinks)
	if err != nil {
		return data, NewOperationError(sheetName, "cells", err)
	}
	data.Rows = rows

	tables, err := parser.DetectTables(f, sheetName, parser.DefaultTableParams())
	if err != nil {
		return data, NewOperationError(sheetName, "tables", err)
	}
	data.TableCandidates = tables

	merged, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return data, NewOperationError(sheetName, "merged_cells", err)
	}
	for _, m := range merged {
		data.MergedCells = append(data.MergedCells, m.GetStartAxis()+":"+m.GetEndAxis())
	}

	if opts.Runs != nil && (opts.Runs.Sheet == "" || opts.Runs.Sheet == sheetName) {
		table, err := parser.ReadTable(f, sheetName, opts.Runs.HeaderRows)
		if err != nil {
			return data, NewOperationError(sheetName, ComponentMerge, err)
		}
		found, err := runs.Collect(table, opts.Runs.GroupCol, opts.Runs.TargetCol)
		if err != nil {
			return data, NewOperationError(sheetName, ComponentMerge, err)
		}
		// report sheet rows rather than table rows
		for i := range found {
			found[i].Start = table.SheetRow(found[i].Start)
			found[i].End = table.SheetRow(found[i].End)
		}
		data.Runs = found
	}
	return data, nil
}
