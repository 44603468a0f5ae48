package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"riplogcheck/internal/batch"
	"riplogcheck/internal/config"
	"riplogcheck/internal/logging"
	"riplogcheck/internal/profiles"
	"riplogcheck/internal/report"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var profileFlag string
	var noHistory bool
	var failOnViolation bool

	cmd := &cobra.Command{
		Use:   "check <log|dir|glob>...",
		Short: "Evaluate rip logs against the checklist",
		Long: "Evaluate rip logs against the checklist.\n\n" +
			"Arguments may be files, directories (searched for *.log), or doublestar globs.\n" +
			"Exit status is 1 when any log could not be evaluated, and 2 when\n" +
			"--fail-on-violation is set and any log violated a criterion.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			settings := *cfg
			if p := strings.TrimSpace(profileFlag); p != "" {
				settings.Checklist.Profile = strings.ToLower(p)
			}
			profile, err := profiles.FromConfig(&settings)
			if err != nil {
				return err
			}
			if problems := profiles.Problems(profile); len(problems) > 0 {
				return fmt.Errorf("profile %s has invalid rules: %w", profile.Name, errors.Join(problems...))
			}
			engine, err := profile.Engine(logger)
			if err != nil {
				return err
			}

			paths, err := batch.Expand(args)
			if err != nil {
				return err
			}
			runner := &batch.Runner{
				Engine:       engine,
				Concurrency:  cfg.Batch.Concurrency,
				MaxFileBytes: cfg.Batch.MaxFileBytes,
				Logger:       logger,
			}
			reports := runner.Run(cmd.Context(), paths)
			logs := report.FromBatch(reports, profile.Table)

			if cfg.History.Enabled && !noHistory {
				recordHistory(cmd.Context(), ctx, cfg, logger, reports, logs)
			}

			doc := report.NewDocument(logs)
			out := cmd.OutOrStdout()
			if err := report.Write(out, format, doc); err != nil {
				return err
			}
			if format == report.FormatTable {
				colorize := shouldColorize(out)
				fmt.Fprintln(out)
				for _, log := range logs {
					fmt.Fprintln(out, verdictLine(log, colorize))
				}
			}
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			return checkExitStatus(doc.Summary, failOnViolation)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Checklist profile (overrides checklist.profile)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record results in the history database")
	cmd.Flags().BoolVar(&failOnViolation, "fail-on-violation", false, "Exit with status 2 when any log violates a criterion")
	return cmd
}

// recordHistory stores completed evaluations and fills in their run IDs.
// History failures are logged; they never fail the check.
func recordHistory(ctx context.Context, cc *commandContext, cfg *config.Config, logger *slog.Logger, reports []batch.FileReport, logs []report.Log) {
	store, err := cc.openHistory(ctx)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run riplogcheck status"),
			logging.String(logging.FieldImpact, "results were not recorded"))
		return
	}
	defer store.Close()

	for i, r := range reports {
		if r.Failed() {
			continue
		}
		entry, err := store.Record(ctx, r.Path, r.Result)
		if err != nil {
			logging.WarnWithContext(logger, "history record failed", "history_record_failed",
				logging.String(logging.FieldPath, r.Path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "result was not recorded"))
			continue
		}
		logs[i].RunID = entry.ID
	}
	if cfg.History.Retention > 0 {
		if _, err := store.Prune(ctx, cfg.History.Retention); err != nil {
			logging.WarnWithContext(logger, "history prune failed", "history_prune_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "history may exceed its retention"))
		}
	}
}

func checkExitStatus(summary report.Summary, failOnViolation bool) error {
	switch {
	case summary.Failed > 0:
		return &exitError{code: exitCodeFailure, err: fmt.Errorf("%d of %d logs could not be evaluated", summary.Failed, summary.Total)}
	case failOnViolation && summary.Evaluated > summary.Clean:
		return &exitError{code: exitCodeViolation}
	default:
		return nil
	}
}
