package main

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/job"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/output"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func (a *app) runCmd() *cobra.Command {
	var parallelism int

	cmd := &cobra.Command{
		Use:   "run [job.yaml]",
		Short: "Run the jobs of a YAML job file",
		Long: `run loads a job file, applies each job's steps to its workbook and
prints a JSON array with one report per job. Jobs run concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := job.Load(args[0])
			if err != nil {
				return err
			}

			p := resolveParallelism(parallelism, file.Parallelism, a.cfg.Parallelism)
			a.logger.Info("running job file",
				zap.String("path", args[0]),
				zap.Int("jobs", len(file.Jobs)),
				zap.Int("parallelism", p))

			reports, runErr := job.NewRunner(p, a.logger).Run(cmd.Context(), file.Jobs)

			data, err := output.ReportsToJSON(reports, a.pretty)
			if err != nil {
				return err
			}
			if err := a.write(data); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("%d of %d jobs failed: %w", len(multierr.Errors(runErr)), len(file.Jobs), runErr)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "Jobs to run at once (default: job file, then settings)")
	return cmd
}

// resolveParallelism picks the first non-zero of the --parallelism flag, the
// job file and the settings file. Zero from all three leaves the runner default.
func resolveParallelism(flag, file, settings int) int {
	return cmp.Or(flag, file, settings)
}
