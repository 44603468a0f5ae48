package checklist

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Profile bundles the ordered checks and deduction table for one log
// format. Supporting another ripping tool means supplying another profile.
type Profile struct {
	Name   string
	Checks []Check
	Table  DeductionTable
}

// ProfileEAC is the Exact Audio Copy profile name.
const ProfileEAC = "eac"

// EACOrder is the EAC checklist order.
var EACOrder = []CriterionID{
	InsecureReadMode,
	AudioCacheNotDefeated,
	C2PointersUsed,
	OffsetSamplesNotFilled,
	SilentBlocksDeleted,
	NullSamplesNotUsed,
	GapHandling,
	ID3TagsAdded,
	CRCMismatch,
	TestAndCopyNotUsed,
}

// EACDeductions returns the default EAC weights.
func EACDeductions() map[CriterionID]int {
	return map[CriterionID]int{
		InsecureReadMode:       2,
		AudioCacheNotDefeated:  5,
		C2PointersUsed:         10,
		OffsetSamplesNotFilled: 5,
		SilentBlocksDeleted:    5,
		NullSamplesNotUsed:     5,
		GapHandling:            10,
		ID3TagsAdded:           1,
		CRCMismatch:            30,
		TestAndCopyNotUsed:     10,
	}
}

// EACRules returns the rules with a known matching line. Criteria without a
// rule run as placeholders.
func EACRules() []Rule {
	return []Rule{
		{Criterion: InsecureReadMode, Label: "Read mode", Accepted: []string{"Secure"}},
		{Criterion: AudioCacheNotDefeated, Label: "Defeat audio cache", Accepted: []string{"Yes"}},
	}
}

// EACProfile returns the default Exact Audio Copy profile.
func EACProfile() Profile {
	table, err := NewDeductionTable(EACDeductions())
	if err != nil {
		panic(fmt.Sprintf("default EAC deductions invalid: %v", err))
	}
	return Profile{
		Name:   ProfileEAC,
		Checks: BuildChecks(EACOrder, EACRules()),
		Table:  table,
	}
}

// BuildChecks returns one check per criterion in order: a LineCheck where a
// rule exists, a PlaceholderCheck otherwise. Rules for criteria outside the
// order are appended after it, sorted by criterion.
func BuildChecks(order []CriterionID, rules []Rule) []Check {
	byCriterion := make(map[CriterionID]Rule, len(rules))
	for _, rule := range rules {
		byCriterion[rule.Criterion] = rule
	}
	checks := make([]Check, 0, len(order)+len(rules))
	inOrder := make(map[CriterionID]struct{}, len(order))
	for _, criterion := range order {
		inOrder[criterion] = struct{}{}
		if rule, ok := byCriterion[criterion]; ok {
			checks = append(checks, NewLineCheck(rule))
			continue
		}
		checks = append(checks, NewPlaceholderCheck(criterion))
	}
	var extra []Rule
	for criterion, rule := range byCriterion {
		if _, ok := inOrder[criterion]; !ok {
			extra = append(extra, rule)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Criterion < extra[j].Criterion })
	for _, rule := range extra {
		checks = append(checks, NewLineCheck(rule))
	}
	return checks
}

// WithRules returns a copy of the profile where each rule replaces the check
// for its criterion, or is appended when the criterion is new.
func (p Profile) WithRules(rules []Rule) Profile {
	if len(rules) == 0 {
		return p
	}
	order := make([]CriterionID, 0, len(p.Checks))
	existing := make(map[CriterionID]Check, len(p.Checks))
	for _, check := range p.Checks {
		order = append(order, check.Criterion())
		existing[check.Criterion()] = check
	}
	replacements := make(map[CriterionID]Rule, len(rules))
	for _, rule := range rules {
		replacements[rule.Criterion] = rule
	}
	checks := make([]Check, 0, len(order)+len(rules))
	for _, criterion := range order {
		if rule, ok := replacements[criterion]; ok {
			checks = append(checks, NewLineCheck(rule))
			delete(replacements, criterion)
			continue
		}
		checks = append(checks, existing[criterion])
	}
	for _, rule := range rules {
		if _, pending := replacements[rule.Criterion]; pending {
			checks = append(checks, NewLineCheck(rule))
			delete(replacements, rule.Criterion)
		}
	}
	p.Checks = checks
	return p
}

// Engine builds an engine for the profile.
func (p Profile) Engine(logger *slog.Logger) (*Engine, error) {
	return NewEngine(p.Name, p.Table, p.Checks, WithLogger(logger))
}

// Placeholders lists the criteria still covered by placeholder checks.
func (p Profile) Placeholders() []CriterionID {
	var out []CriterionID
	for _, check := range p.Checks {
		if IsPlaceholder(check) {
			out = append(out, check.Criterion())
		}
	}
	return out
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileEAC:
		return EACProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown checklist profile %q (known: %s)", name, strings.Join(ProfileNames(), ", "))
	}
}

// ProfileNames lists the built-in profiles.
func ProfileNames() []string {
	return []string{ProfileEAC}
}
