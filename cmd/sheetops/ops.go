package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetops-go/pkg/sheetops"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/job"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/output"
)

// fileFlags are shared by the commands that rewrite a workbook.
type fileFlags struct {
	input  string
	output string
	sheets []string
}

func (ff *fileFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.input, "input", "i", "", "Input workbook (required)")
	cmd.Flags().StringVarP(&ff.output, "output", "o", "", "Output workbook (default: overwrite input)")
	cmd.Flags().StringSliceVar(&ff.sheets, "sheets", nil, "Sheets to process (default: all)")
	_ = cmd.MarkFlagRequired("input")
}

// runStep applies a single step to the workbook named by ff as a one-step
// job and prints its report.
func (a *app) runStep(cmd *cobra.Command, ff *fileFlags, step job.Step, dryRun bool) error {
	j := job.Job{
		Name:   step.Op(),
		Input:  ff.input,
		Output: ff.output,
		Steps:  []job.Step{step},
		DryRun: dryRun,
	}
	if j.Output == "" {
		j.Output = j.Input
	}
	if err := job.Validate(&job.File{Jobs: []job.Job{j}}); err != nil {
		return err
	}

	report := job.NewRunner(1, a.logger).RunJob(cmd.Context(), j)
	data, err := output.ReportToJSON(&report, a.pretty)
	if err != nil {
		return err
	}
	if err := a.write(data); err != nil {
		return err
	}
	if !report.Success {
		return errors.New(report.Error)
	}
	return nil
}

func (a *app) mergeCmd() *cobra.Command {
	var ff fileFlags
	step := job.MergeStep{}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge target-column cells over runs of repeated rows",
		Long: `merge scans a sheet for consecutive rows whose group and target
columns both repeat and merges the target column cells of each run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStep(cmd, &ff, job.Step{Merge: &step}, step.DryRun)
		},
	}
	cmd.Flags().StringVarP(&ff.input, "input", "i", "", "Input workbook (required)")
	cmd.Flags().StringVarP(&ff.output, "output", "o", "", "Output workbook (default: overwrite input)")
	cmd.Flags().StringVar(&step.Sheet, "sheet", "", "Sheet to merge on (default: active sheet)")
	cmd.Flags().StringVar(&step.Group, "group", "B", "Grouping column (letter or 1-based number)")
	cmd.Flags().StringVar(&step.Target, "target", "C", "Column to merge (letter or 1-based number)")
	cmd.Flags().IntVar(&step.HeaderRows, "header-rows", 0, "Leading rows to leave alone")
	cmd.Flags().BoolVar(&step.DryRun, "dry-run", false, "Report the ranges without changing the workbook")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) sortCmd() *cobra.Command {
	var ff fileFlags
	step := job.SortStep{}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort data rows by header columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step.Sheets = ff.sheets
			return a.runStep(cmd, &ff, job.Step{Sort: &step}, false)
		},
	}
	ff.bind(cmd)
	cmd.Flags().StringSliceVar(&step.Columns, "columns", nil, "Header names to sort by, in priority order (default: all)")
	cmd.Flags().BoolVar(&step.Descending, "desc", false, "Sort in descending order")
	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	var ff fileFlags
	opts := sheetops.DefaultFilterOptions()
	step := job.FilterStep{
		SkipRows: opts.SkipRows,
		Values:   opts.Values,
	}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the header and the rows matching given values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step.Sheets = ff.sheets
			return a.runStep(cmd, &ff, job.Step{Filter: &step}, false)
		},
	}
	ff.bind(cmd)
	cmd.Flags().IntVar(&step.SkipRows, "skip-rows", step.SkipRows, "Leading rows to drop before the header")
	cmd.Flags().StringVar(&step.Column, "column", strconv.Itoa(opts.Column+1), "Column to match (letter or 1-based number)")
	cmd.Flags().StringSliceVar(&step.Values, "values", step.Values, "Cell values to keep")
	return cmd
}

func (a *app) headerCmd() *cobra.Command {
	var ff fileFlags
	step := job.HeaderStep{}

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Insert a header row above the existing rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step.Sheets = ff.sheets
			return a.runStep(cmd, &ff, job.Step{Header: &step}, false)
		},
	}
	ff.bind(cmd)
	cmd.Flags().StringSliceVar(&step.Header, "header", nil, "Header cell texts (required)")
	_ = cmd.MarkFlagRequired("header")
	return cmd
}

func (a *app) formatCmd() *cobra.Command {
	var ff fileFlags
	defaults := sheetops.DefaultFormatOptions()
	var (
		rng         string
		borderStyle int
		borderColor string
		boldHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Draw cell borders and make the header row bold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step := job.FormatStep{
				Sheets:      ff.sheets,
				Range:       rng,
				BorderStyle: &borderStyle,
				BorderColor: borderColor,
				BoldHeader:  &boldHeader,
			}
			return a.runStep(cmd, &ff, job.Step{Format: &step}, false)
		},
	}
	ff.bind(cmd)
	cmd.Flags().StringVar(&rng, "range", "", "Range to format, e.g. A1:D20 (default: used range)")
	cmd.Flags().IntVar(&borderStyle, "border-style", defaults.BorderStyle, "Border style (0 none, 1 thin, 2 medium, 5 thick)")
	cmd.Flags().StringVar(&borderColor, "border-color", "", "Border color as hex RGB (default: black)")
	cmd.Flags().BoolVar(&boldHeader, "bold-header", defaults.BoldHeader, "Make the first row bold")
	return cmd
}

func (a *app) autofitCmd() *cobra.Command {
	var ff fileFlags
	defaults := sheetops.DefaultAutoFitOptions()
	var (
		padding int
		center  bool
	)

	cmd := &cobra.Command{
		Use:   "autofit",
		Short: "Fit column widths to their content and center cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step := job.AutoFitStep{
				Sheets:  ff.sheets,
				Padding: &padding,
				Center:  &center,
			}
			return a.runStep(cmd, &ff, job.Step{AutoFit: &step}, false)
		},
	}
	ff.bind(cmd)
	cmd.Flags().IntVar(&padding, "padding", defaults.Padding, "Characters added to the widest cell")
	cmd.Flags().BoolVar(&center, "center", defaults.Center, "Center cell content")
	return cmd
}
