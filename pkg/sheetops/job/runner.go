package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetops-go/pkg/sheetops"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/models"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner executes jobs. Each job works on its own workbook, so jobs run
// concurrently up to Parallelism.
type Runner struct {
	Parallelism int
	Logger      *zap.Logger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(parallelism int, logger *zap.Logger) *Runner {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Parallelism: parallelism, Logger: logger}
}

// Run executes every job and returns one report per job, in job order.
// A failing job does not stop the others; the returned error combines the
// failures. Cancelling ctx stops jobs at their next step. Jobs whose
// workbooks conflict (see CheckPaths) are rejected before any job starts.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]models.Report, error) {
	if err := CheckPaths(jobs); err != nil {
		return nil, err
	}
	reports := make([]models.Report, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Parallelism)
	for i := range jobs {
		g.Go(func() error {
			reports[i] = r.RunJob(gctx, jobs[i])
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	for i, rep := range reports {
		if !rep.Success {
			errs = multierr.Append(errs, &Error{Job: jobs[i].Name, Msg: rep.Error})
		}
	}
	return reports, errs
}

// RunJob opens the job's input, applies its steps in order and saves the
// result to its output.
func (r *Runner) RunJob(ctx context.Context, j Job) models.Report {
	start := time.Now()
	report := models.Report{
		RunID:  uuid.NewString(),
		Job:    j.Name,
		Input:  j.Input,
		Output: j.Output,
	}
	logger := r.Logger.With(zap.String("job", j.Name), zap.String("run_id", report.RunID))

	err := r.runSteps(ctx, j, &report, logger)
	report.Duration = time.Since(start).String()
	if err != nil {
		report.Error = err.Error()
		logger.Error("job failed", zap.Error(err))
		return report
	}
	report.Success = true
	logger.Info("job complete", zap.String("output", j.Output), zap.String("duration", report.Duration))
	return report
}

func (r *Runner) runSteps(ctx context.Context, j Job, report *models.Report, logger *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := sheetops.Open(j.Input)
	if err != nil {
		return err
	}
	defer func() { f.Close() }()

	for i, step := range j.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("applying step", zap.Int("step", i+1), zap.String("op", step.Op()))

		var sr models.StepReport
		f, sr, err = Apply(f, step, logger)
		report.Steps = append(report.Steps, sr)
		if err != nil {
			return &StepError{Index: i + 1, Op: step.Op(), Err: err}
		}
	}

	if j.DryRun {
		report.Output = ""
		return nil
	}
	output := j.Output
	if output == "" {
		output = j.Input
	}
	return sheetops.Save(f, output)
}
