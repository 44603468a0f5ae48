package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riplogcheck/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, checklist profile, and history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("riplogcheck status", colorize) {
				fmt.Fprintln(out, line)
			}
			if ctx.configPath != "" {
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(out, renderStatusLine("History database", statusInfo, "Disabled", colorize))
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return &exitError{code: exitCodeFailure}
			}
			return nil
		},
	}
}
