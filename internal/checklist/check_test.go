package checklist_test

import (
	"testing"

	"riplogcheck/internal/checklist"
)

func TestLineCheckMatching(t *testing.T) {
	readMode := checklist.Rule{Criterion: checklist.InsecureReadMode, Label: "Read mode", Accepted: []string{"Secure"}}
	cache := checklist.Rule{Criterion: checklist.AudioCacheNotDefeated, Label: "Defeat audio cache", Accepted: []string{"Yes"}}

	cases := []struct {
		name string
		rule checklist.Rule
		text string
		want checklist.Outcome
	}{
		{"exact eac spacing", readMode, "Read mode               : Secure\n", checklist.Satisfied},
		{"collapsed spacing", readMode, "Read mode: Secure", checklist.Satisfied},
		{"tab separated", cache, "Defeat\taudio cache\t:\tYes\r\n", checklist.Satisfied},
		{"legacy trailing detail", readMode, "Read mode : Secure with NO C2, accurate stream, disable cache\n", checklist.Satisfied},
		{"indented line", readMode, "   Read mode : Secure\n", checklist.Satisfied},
		{"among other lines", cache, "Used drive : X\nDefeat audio cache      : Yes\nMake use of C2 pointers : No\n", checklist.Satisfied},
		{"wrong value", readMode, "Read mode               : Burst\n", checklist.Violated},
		{"value prefix only", cache, "Defeat audio cache : Yesterday\n", checklist.Violated},
		{"not line anchored", readMode, "Note: Read mode : Secure\n", checklist.Violated},
		{"absent", readMode, "Exact Audio Copy V1.6\n", checklist.Violated},
		{"label case differs", readMode, "read mode : Secure\n", checklist.Violated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check := checklist.NewLineCheck(tc.rule)
			got, err := check.Run(checklist.NewDocument(tc.text))
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected outcome: got %s want %s", got, tc.want)
			}
		})
	}
}

func TestLineCheckMultipleAcceptedValues(t *testing.T) {
	check := checklist.NewLineCheck(checklist.Rule{
		Criterion: checklist.GapHandling,
		Label:     "Gap handling",
		Accepted:  []string{"Appended to previous track", "Appended to next track"},
	})
	for text, want := range map[string]checklist.Outcome{
		"Gap handling : Appended to previous track\n": checklist.Satisfied,
		"Gap handling : Appended to next track\n":     checklist.Satisfied,
		"Gap handling : Not detected, thus appended\n": checklist.Violated,
	} {
		got, err := check.Run(checklist.NewDocument(text))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if got != want {
			t.Fatalf("%q: got %s want %s", text, got, want)
		}
	}
}

func TestLineCheckQuotesMetacharacters(t *testing.T) {
	check := checklist.NewLineCheck(checklist.Rule{Criterion: "meta", Label: "Peak level (%)", Accepted: []string{"1.0"}})
	got, err := check.Run(checklist.NewDocument("Peak level (%) : 1x0\n"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != checklist.Violated {
		t.Fatalf("metacharacters must match literally, got %s", got)
	}
}

func TestLineCheckPatternAndInvert(t *testing.T) {
	pattern := checklist.NewLineCheck(checklist.Rule{Criterion: checklist.TestAndCopyNotUsed, Pattern: `^\s*Test CRC [0-9A-F]{8}`})
	got, err := pattern.Run(checklist.NewDocument("Track 1\n     Test CRC 9A3B1C2D\n"))
	if err != nil || got != checklist.Satisfied {
		t.Fatalf("expected pattern match, got %s (%v)", got, err)
	}

	inverted := checklist.NewLineCheck(checklist.Rule{Criterion: checklist.ID3TagsAdded, Label: "Add ID3 tag", Accepted: []string{"Yes"}, Invert: true})
	got, err = inverted.Run(checklist.NewDocument("Add ID3 tag : Yes\n"))
	if err != nil || got != checklist.Violated {
		t.Fatalf("expected inverted match to violate, got %s (%v)", got, err)
	}
	got, err = inverted.Run(checklist.NewDocument("Add ID3 tag : No\n"))
	if err != nil || got != checklist.Satisfied {
		t.Fatalf("expected inverted miss to satisfy, got %s (%v)", got, err)
	}
}

func TestLineCheckInvalidRulesAreIndeterminate(t *testing.T) {
	rules := map[string]checklist.Rule{
		"malformed pattern": {Criterion: "x", Pattern: "(open"},
		"no label":          {Criterion: "x", Accepted: []string{"Yes"}},
		"no values":         {Criterion: "x", Label: "Read mode", Accepted: []string{" "}},
		"no criterion":      {Label: "Read mode", Accepted: []string{"Secure"}},
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			check := checklist.NewLineCheck(rule)
			if check.Err() == nil {
				t.Fatal("expected compile error")
			}
			got, err := check.Run(checklist.NewDocument("Read mode : Secure"))
			if got != checklist.Indeterminate || err == nil {
				t.Fatalf("expected Indeterminate with error, got %s (%v)", got, err)
			}
		})
	}
}

func TestPlaceholderAlwaysSatisfied(t *testing.T) {
	check := checklist.NewPlaceholderCheck(checklist.CRCMismatch)
	if !checklist.IsPlaceholder(check) {
		t.Fatal("expected placeholder")
	}
	for _, text := range []string{"anything", "Copy CRC 00000000\nTest CRC FFFFFFFF"} {
		got, err := check.Run(checklist.NewDocument(text))
		if err != nil || got != checklist.Satisfied {
			t.Fatalf("placeholder returned %s (%v)", got, err)
		}
	}
	if checklist.IsPlaceholder(checklist.NewLineCheck(checklist.EACRules()[0])) {
		t.Fatal("line check is not a placeholder")
	}
}

func TestEACProfilePlaceholders(t *testing.T) {
	profile := checklist.EACProfile()
	placeholders := profile.Placeholders()
	if len(placeholders) != len(checklist.EACOrder)-2 {
		t.Fatalf("unexpected placeholders: %v", placeholders)
	}
	for _, criterion := range placeholders {
		if criterion == checklist.InsecureReadMode || criterion == checklist.AudioCacheNotDefeated {
			t.Fatalf("%s has a rule and must not be a placeholder", criterion)
		}
	}
}

func TestParseCriterionID(t *testing.T) {
	if got := checklist.ParseCriterionID(" Insecure_Read_Mode "); got != checklist.InsecureReadMode {
		t.Fatalf("unexpected criterion: %q", got)
	}
	if checklist.CRCMismatch.Description() == string(checklist.CRCMismatch) {
		t.Fatal("expected description for known criterion")
	}
	if got := checklist.CriterionID("custom").Description(); got != "custom" {
		t.Fatalf("unexpected description for custom criterion: %q", got)
	}
}

func TestLookupProfile(t *testing.T) {
	if _, err := checklist.LookupProfile("EAC"); err != nil {
		t.Fatalf("LookupProfile(EAC) returned error: %v", err)
	}
	if _, err := checklist.LookupProfile("cueripper"); err == nil {
		t.Fatal("expected unknown profile error")
	}
}
