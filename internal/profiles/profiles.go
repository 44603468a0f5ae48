// Package profiles builds checklist profiles from configuration: the
// built-in profile named by checklist.profile, with deduction and rule
// overrides applied on top.
package profiles

import (
	"fmt"
	"sort"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/config"
)

// FromConfig resolves the configured profile. Deduction overrides must name
// a criterion the profile checks or one a configured rule introduces.
func FromConfig(cfg *config.Config) (checklist.Profile, error) {
	name := ""
	var settings config.Checklist
	if cfg != nil {
		settings = cfg.Checklist
		name = settings.Profile
	}

	profile, err := checklist.LookupProfile(name)
	if err != nil {
		return checklist.Profile{}, err
	}

	rules := make([]checklist.Rule, 0, len(settings.Rules))
	for _, rule := range settings.Rules {
		rules = append(rules, checklist.Rule{
			Criterion: checklist.ParseCriterionID(rule.Criterion),
			Label:     rule.Label,
			Accepted:  append([]string(nil), rule.Accepted...),
			Pattern:   rule.Pattern,
			Invert:    rule.Invert,
		})
	}
	profile = profile.WithRules(rules)

	if len(settings.Deductions) > 0 {
		known := make(map[checklist.CriterionID]struct{}, len(profile.Checks))
		for _, check := range profile.Checks {
			known[check.Criterion()] = struct{}{}
		}
		overrides := make(map[checklist.CriterionID]int, len(settings.Deductions))
		for key, weight := range settings.Deductions {
			criterion := checklist.ParseCriterionID(key)
			if _, ok := known[criterion]; !ok {
				return checklist.Profile{}, fmt.Errorf("checklist.deductions.%s: profile %q has no such criterion", key, profile.Name)
			}
			overrides[criterion] = weight
		}
		table, err := profile.Table.With(overrides)
		if err != nil {
			return checklist.Profile{}, fmt.Errorf("checklist.deductions: %w", err)
		}
		profile.Table = table
	}
	return profile, nil
}

// Problems lists rules in profile that fail to compile, sorted by
// criterion. An empty result means every run can complete.
func Problems(profile checklist.Profile) []error {
	var problems []error
	for _, check := range profile.Checks {
		line, ok := check.(*checklist.LineCheck)
		if !ok || line.Err() == nil {
			continue
		}
		problems = append(problems, fmt.Errorf("%s: %w", check.Criterion(), line.Err()))
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Error() < problems[j].Error() })
	return problems
}
