package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/logfile"
	"riplogcheck/internal/logging"
)

// DefaultConcurrency bounds the worker group when Runner.Concurrency is unset.
const DefaultConcurrency = 4

// FileReport is the outcome for one log file. Exactly one of Result and Err
// is set.
type FileReport struct {
	Path     string
	Result   *checklist.Result
	Err      error
	Duration time.Duration
}

// Failed reports whether the log could not be evaluated.
func (r FileReport) Failed() bool { return r.Err != nil }

// Runner evaluates files with a shared engine. Engines are safe for
// concurrent use, so one engine serves every worker.
type Runner struct {
	Engine       *checklist.Engine
	Concurrency  int
	MaxFileBytes int64
	Logger       *slog.Logger
}

// Run evaluates paths and returns reports in the same order. Files not yet
// started when ctx is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string) []FileReport {
	reports := make([]FileReport, len(paths))
	logger := logging.NewComponentLogger(r.Logger, "batch")

	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = r.evaluate(ctx, logger, path)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (r *Runner) evaluate(ctx context.Context, logger *slog.Logger, path string) (report FileReport) {
	report.Path = path
	if err := ctx.Err(); err != nil {
		report.Err = err
		return report
	}
	started := time.Now()
	defer func() { report.Duration = time.Since(started) }()

	text, err := logfile.Read(path, r.MaxFileBytes)
	if err != nil {
		report.Err = err
		logging.WarnWithContext(logger, "log unreadable", "log_read_failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the path and file size limit"),
			logging.String(logging.FieldImpact, "log skipped"))
		return report
	}
	result, err := r.Engine.EvaluateText(text)
	if err != nil {
		report.Err = err
		logging.WarnWithContext(logger, "log not evaluated", "log_evaluation_failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no score for this log"))
		return report
	}
	report.Result = result
	logger.Info("log evaluated",
		logging.String(logging.FieldPath, path),
		logging.Int("deducted_points", result.DeductedPoints),
		logging.Int("violations", len(result.Violations())))
	return report
}
