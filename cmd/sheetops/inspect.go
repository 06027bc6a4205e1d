package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetops-go/pkg/sheetops"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/job"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/output"
	"go.uber.org/zap"
)

func (a *app) inspectCmd() *cobra.Command {
	var (
		outputPath string
		sheetsDir  string
		links      bool
		withRuns   bool
		runStep    job.MergeStep
	)

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the cells, tables, merged cells and runs of a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sheetops.InspectOptions{IncludeLinks: links}
			if withRuns {
				runOpts, err := runStep.Options()
				if err != nil {
					return err
				}
				opts.Runs = &runOpts
			}

			wb, err := sheetops.Inspect(args[0], opts)
			if wb == nil {
				return fmt.Errorf("inspection failed: %w", err)
			}
			if err != nil {
				a.logger.Warn("some sheets could not be inspected", zap.Error(err))
			}

			jsonData, err := output.ToJSON(wb, a.pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else if sheetsDir == "" {
				if err := a.write(jsonData); err != nil {
					return err
				}
			}

			if sheetsDir != "" {
				if err := a.writeSheetFiles(wb, sheetsDir); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	cmd.Flags().BoolVar(&links, "links", false, "Include cell hyperlinks")
	cmd.Flags().BoolVar(&withRuns, "runs", false, "Report the runs merge would merge")
	cmd.Flags().StringVar(&runStep.Sheet, "sheet", "", "Only report runs on this sheet")
	cmd.Flags().StringVar(&runStep.Group, "group", "B", "Grouping column for --runs")
	cmd.Flags().StringVar(&runStep.Target, "target", "C", "Target column for --runs")
	cmd.Flags().IntVar(&runStep.HeaderRows, "header-rows", 0, "Leading rows excluded from --runs")
	return cmd
}

func (a *app) writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, a.pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
		a.logger.Debug("wrote sheet file", zap.String("path", filename))
	}

	return nil
}
