package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/history"
	"riplogcheck/internal/profiles"
	"riplogcheck/internal/report"
)

const shortIDLength = 8

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and prune stored evaluations",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent evaluations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if entries == nil {
					entries = []history.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No evaluations recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum evaluations to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		violations := e.Result().Violations()
		names := make([]string, len(violations))
		for i, v := range violations {
			names[i] = string(v)
		}
		rows = append(rows, []string{
			shortID(e.ID),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.LogPath,
			e.Profile,
			strconv.Itoa(report.Score(e.DeductedPoints)),
			strings.Join(names, ", "),
		})
	}
	return report.RenderTable(
		[]string{"ID", "When", "Log", "Profile", "Score", "Violations"},
		rows,
		nil,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft},
	)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored evaluation (an ID prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, history.ErrAmbiguousID) {
					return fmt.Errorf("%w; use more characters of the id", err)
				}
				return err
			}
			log := report.FromResult(entry.LogPath, entry.Result(), tableFor(ctx, entry.Profile))
			// Weights may have changed since the run; the stored total is authoritative.
			log.DeductedPoints = entry.DeductedPoints
			log.Score = report.Score(entry.DeductedPoints)
			log.RunID = entry.ID
			return report.Write(cmd.OutOrStdout(), format, report.NewDocument([]report.Log{log}))
		},
	}
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}

// tableFor returns the deduction table for a stored run's profile: the
// configured table when the profile matches, otherwise the built-in one.
func tableFor(ctx *commandContext, profileName string) checklist.DeductionTable {
	if cfg, err := ctx.ensureConfig(); err == nil && strings.EqualFold(cfg.Checklist.Profile, profileName) {
		if profile, err := profiles.FromConfig(cfg); err == nil {
			return profile.Table
		}
	}
	if profile, err := checklist.LookupProfile(profileName); err == nil {
		return profile.Table
	}
	return checklist.DeductionTable{}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keep") {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				keep = cfg.History.Retention
			}
			if keep <= 0 {
				return errors.New("nothing to prune: pass --keep N or set history.retention")
			}
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d evaluations (kept newest %d)\n", removed, keep)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Number of evaluations to keep (defaults to history.retention)")
	return cmd
}
