package job

import (
	"fmt"

	"github.com/ukaji3/sheetops-go/pkg/sheetops"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Apply runs one step against f. Filter replaces the workbook: the returned
// file is the one to continue with, and f is closed in that case.
func Apply(f *excelize.File, step Step, logger *zap.Logger) (*excelize.File, models.StepReport, error) {
	report := models.StepReport{Op: step.Op()}
	var err error

	switch {
	case step.Sort != nil:
		report.Sheets, err = sheetops.Sort(f, sheetops.SortOptions{
			Columns:    step.Sort.Columns,
			Sheets:     step.Sort.Sheets,
			Descending: step.Sort.Descending,
			Logger:     logger,
		})

	case step.Filter != nil:
		col, cerr := parser.ParseColumn(step.Filter.Column)
		if cerr != nil {
			return f, report, fmt.Errorf("%w: %v", sheetops.ErrInvalidInput, cerr)
		}
		out, ferr := sheetops.Filter(f, sheetops.FilterOptions{
			SkipRows: step.Filter.SkipRows,
			Column:   col,
			Values:   step.Filter.Values,
			Sheets:   step.Filter.Sheets,
			Logger:   logger,
		})
		if ferr != nil {
			return f, report, ferr
		}
		report.Sheets = out.GetSheetList()
		f.Close()
		return out, report, nil

	case step.Header != nil:
		report.Sheets, err = sheetops.InjectHeader(f, sheetops.HeaderOptions{
			Header: step.Header.Header,
			Sheets: step.Header.Sheets,
			Logger: logger,
		})

	case step.Format != nil:
		opts := sheetops.DefaultFormatOptions()
		opts.Sheets = step.Format.Sheets
		opts.Range = step.Format.Range
		opts.BorderColor = step.Format.BorderColor
		opts.Logger = logger
		if step.Format.BorderStyle != nil {
			opts.BorderStyle = *step.Format.BorderStyle
		}
		if step.Format.BoldHeader != nil {
			opts.BoldHeader = *step.Format.BoldHeader
		}
		report.Sheets, err = sheetops.Format(f, opts)

	case step.AutoFit != nil:
		opts := sheetops.DefaultAutoFitOptions()
		opts.Sheets = step.AutoFit.Sheets
		opts.Logger = logger
		if step.AutoFit.Padding != nil {
			opts.Padding = *step.AutoFit.Padding
		}
		if step.AutoFit.Center != nil {
			opts.Center = *step.AutoFit.Center
		}
		report.Sheets, err = sheetops.AutoFit(f, opts)

	case step.Merge != nil:
		opts, merr := step.Merge.Options()
		if merr != nil {
			return f, report, merr
		}
		opts.Logger = logger
		report.Merged, err = sheetops.MergeRuns(f, opts)
		if sheet, serr := sheetops.ResolveSheet(f, opts.Sheet); serr == nil {
			report.Sheets = []string{sheet}
		}

	default:
		err = fmt.Errorf("%w: step sets no operation", ErrInvalidJob)
	}

	return f, report, err
}

// Options converts the step into sheetops.MergeOptions.
func (m *MergeStep) Options() (sheetops.MergeOptions, error) {
	group, err := parser.ParseColumn(m.Group)
	if err != nil {
		return sheetops.MergeOptions{}, fmt.Errorf("%w: group: %v", sheetops.ErrInvalidInput, err)
	}
	target, err := parser.ParseColumn(m.Target)
	if err != nil {
		return sheetops.MergeOptions{}, fmt.Errorf("%w: target: %v", sheetops.ErrInvalidInput, err)
	}
	return sheetops.MergeOptions{
		Sheet:      m.Sheet,
		GroupCol:   group,
		TargetCol:  target,
		HeaderRows: m.HeaderRows,
		DryRun:     m.DryRun,
	}, nil
}
