package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/profiles"
	"riplogcheck/internal/report"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect checklist profiles",
	}
	profileCmd.AddCommand(newProfileShowCommand(ctx))
	profileCmd.AddCommand(newProfileListCommand())
	return profileCmd
}

type profileCriterionView struct {
	Criterion   checklist.CriterionID `json:"criterion"`
	Description string                `json:"description"`
	Weight      int                   `json:"weight"`
	Matcher     string                `json:"matcher"`
	Provisional bool                  `json:"provisional"`
}

type profileView struct {
	Name     string                 `json:"name"`
	Criteria []profileCriterionView `json:"criteria"`
}

func newProfileShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the configured profile's criteria, weights, and rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			profile, err := profiles.FromConfig(cfg)
			if err != nil {
				return err
			}
			view := buildProfileView(profile)
			if jsonOutput {
				return writeJSON(cmd, view)
			}

			rows := make([][]string, 0, len(view.Criteria))
			for _, c := range view.Criteria {
				matcher := c.Matcher
				if c.Provisional {
					matcher = "(provisional: always satisfied)"
				}
				rows = append(rows, []string{string(c.Criterion), strconv.Itoa(c.Weight), matcher})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s\n", view.Name)
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Criterion", "Weight", "Matcher"},
				rows,
				nil,
				[]report.Alignment{report.AlignLeft, report.AlignRight, report.AlignLeft},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func buildProfileView(profile checklist.Profile) profileView {
	view := profileView{Name: profile.Name}
	for _, check := range profile.Checks {
		criterion := check.Criterion()
		row := profileCriterionView{
			Criterion:   criterion,
			Description: criterion.Description(),
			Weight:      profile.Table.Weight(criterion),
			Provisional: checklist.IsPlaceholder(check),
		}
		if line, ok := check.(*checklist.LineCheck); ok {
			row.Matcher = describeRule(line.Rule())
		}
		view.Criteria = append(view.Criteria, row)
	}
	return view
}

func describeRule(rule checklist.Rule) string {
	var desc string
	if strings.TrimSpace(rule.Pattern) != "" {
		desc = "/" + rule.Pattern + "/"
	} else {
		desc = fmt.Sprintf("%s : %s", rule.Label, strings.Join(rule.Accepted, " | "))
	}
	if rule.Invert {
		desc = "must not match " + desc
	}
	return desc
}

func newProfileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List built-in profiles",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range checklist.ProfileNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
