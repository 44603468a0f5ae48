package profiles

import (
	"strings"
	"testing"

	"riplogcheck/internal/checklist"
	"riplogcheck/internal/config"
	"riplogcheck/internal/logfile"
	"riplogcheck/internal/testsupport"
)

func TestFromConfigDefaultsToEAC(t *testing.T) {
	cfg := config.Default()
	profile, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if profile.Name != checklist.ProfileEAC {
		t.Fatalf("unexpected profile: %q", profile.Name)
	}
	if len(profile.Checks) != len(checklist.EACOrder) {
		t.Fatalf("unexpected check count: %d", len(profile.Checks))
	}
	if got := profile.Table.Weight(checklist.InsecureReadMode); got != checklist.EACDeductions()[checklist.InsecureReadMode] {
		t.Fatalf("unexpected default weight: %d", got)
	}
}

func TestFromConfigNilUsesDefaults(t *testing.T) {
	profile, err := FromConfig(nil)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if profile.Name != checklist.ProfileEAC {
		t.Fatalf("unexpected profile: %q", profile.Name)
	}
}

func TestFromConfigAppliesDeductionOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Checklist.Deductions = map[string]int{"insecure-read-mode": 0, "crc-mismatch": 40}

	profile, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if got := profile.Table.Weight(checklist.InsecureReadMode); got != 0 {
		t.Fatalf("expected overridden weight 0, got %d", got)
	}
	if got := profile.Table.Weight(checklist.CRCMismatch); got != 40 {
		t.Fatalf("expected overridden weight 40, got %d", got)
	}
	if got := profile.Table.Weight(checklist.C2PointersUsed); got != checklist.EACDeductions()[checklist.C2PointersUsed] {
		t.Fatalf("unrelated weight changed: %d", got)
	}
}

func TestFromConfigRejectsUnknownDeduction(t *testing.T) {
	cfg := config.Default()
	cfg.Checklist.Deductions = map[string]int{"bogus": 3}
	if _, err := FromConfig(&cfg); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected unknown criterion error, got %v", err)
	}
}

func TestFromConfigRejectsUnknownProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Checklist.Profile = "xld"
	if _, err := FromConfig(&cfg); err == nil {
		t.Fatal("expected unknown profile error")
	}
}

func TestFromConfigRulesReplacePlaceholders(t *testing.T) {
	cfg := config.Default()
	cfg.Checklist.Rules = []config.Rule{
		{Criterion: "c2-pointers-used", Label: "Make use of C2 pointers", Accepted: []string{"No"}},
		{Criterion: "range-rip", Pattern: `^Range status and errors`, Invert: true},
	}
	cfg.Checklist.Deductions = map[string]int{"range-rip": 30}

	profile, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	for _, criterion := range profile.Placeholders() {
		if criterion == checklist.C2PointersUsed {
			t.Fatal("c2-pointers-used should no longer be a placeholder")
		}
	}
	last := profile.Checks[len(profile.Checks)-1]
	if last.Criterion() != "range-rip" {
		t.Fatalf("expected new rule appended, got %s", last.Criterion())
	}
	if profile.Table.Weight("range-rip") != 30 {
		t.Fatalf("expected weight for new criterion, got %d", profile.Table.Weight("range-rip"))
	}

	engine, err := profile.Engine(nil)
	if err != nil {
		t.Fatalf("Engine returned error: %v", err)
	}
	result, err := engine.EvaluateText("Read mode : Secure\nDefeat audio cache : Yes\nMake use of C2 pointers : Yes\nRange status and errors\n")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if !result.Violated(checklist.C2PointersUsed) || !result.Violated("range-rip") {
		t.Fatalf("expected c2 and range-rip violations, got %v", result.Flags)
	}
	want := checklist.EACDeductions()[checklist.C2PointersUsed] + 30
	if result.DeductedPoints != want {
		t.Fatalf("unexpected deducted points: got %d want %d", result.DeductedPoints, want)
	}
}

func TestProblemsReportsBrokenRules(t *testing.T) {
	cfg := config.Default()
	cfg.Checklist.Rules = []config.Rule{{Criterion: "gap-handling", Pattern: "([unclosed"}}

	profile, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	problems := Problems(profile)
	if len(problems) != 1 || !strings.HasPrefix(problems[0].Error(), "gap-handling:") {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(Problems(checklist.EACProfile())) != 0 {
		t.Fatal("default profile should have no problems")
	}
}

func TestEngineUsesConfiguredWeights(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDeduction("insecure-read-mode", 7))
	profile, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	engine, err := profile.Engine(nil)
	if err != nil {
		t.Fatalf("Engine returned error: %v", err)
	}

	settings := testsupport.SecureSettings()
	settings.ReadMode = "Burst"
	path := testsupport.WriteFile(t, "burst.log", []byte(testsupport.EACLog(settings)))
	text, err := logfile.Read(path, 1<<20)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	result, err := engine.EvaluateText(text)
	if err != nil {
		t.Fatalf("EvaluateText returned error: %v", err)
	}
	if !result.Violated(checklist.InsecureReadMode) {
		t.Fatalf("expected insecure read mode flagged: %+v", result.Flags)
	}
	if result.DeductedPoints != 7 {
		t.Fatalf("expected 7 deducted points, got %d", result.DeductedPoints)
	}
}
