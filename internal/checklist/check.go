package checklist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Check evaluates a single criterion against a log. A non-nil error is only
// meaningful alongside Indeterminate and explains why the matcher failed.
// Checks must be pure functions of the document.
type Check interface {
	Criterion() CriterionID
	Run(doc Document) (Outcome, error)
}

// Rule describes the line a LineCheck expects to find. Either Label plus
// Accepted values, or a raw Pattern, must be supplied.
type Rule struct {
	Criterion CriterionID `toml:"criterion" json:"criterion" yaml:"criterion"`
	// Label is the fixed text at the start of the line, e.g. "Read mode".
	// Runs of spaces inside the label match any run of blanks.
	Label string `toml:"label" json:"label,omitempty" yaml:"label,omitempty"`
	// Accepted lists the values allowed after the colon.
	Accepted []string `toml:"accepted" json:"accepted,omitempty" yaml:"accepted,omitempty"`
	// Pattern is a raw RE2 expression evaluated in multi-line mode. It takes
	// precedence over Label/Accepted.
	Pattern string `toml:"pattern" json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Invert flags a match as the violation, for lines that must not appear.
	Invert bool `toml:"invert" json:"invert,omitempty" yaml:"invert,omitempty"`
}

// Expression returns the regular expression source the rule compiles to.
func (r Rule) Expression() (string, error) {
	if strings.TrimSpace(r.Pattern) != "" {
		return "(?m)" + r.Pattern, nil
	}
	words := strings.Fields(r.Label)
	if len(words) == 0 {
		return "", errors.New("rule has neither label nor pattern")
	}
	values := make([]string, 0, len(r.Accepted))
	for _, value := range r.Accepted {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		values = append(values, regexp.QuoteMeta(value))
	}
	if len(values) == 0 {
		return "", fmt.Errorf("rule %q has no accepted values", r.Label)
	}
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return `(?m)^[ \t]*` + strings.Join(words, `[ \t]+`) +
		`[ \t]*:[ \t]*(?:` + strings.Join(values, "|") + `)(?:[^\w]|$)`, nil
}

// LineCheck satisfies its criterion when the rule's line appears in the log.
// The search stops at the first match. A rule that fails to compile makes
// every run Indeterminate rather than failing construction, so a broken
// profile surfaces as a CheckFailedError naming the criterion.
type LineCheck struct {
	rule    Rule
	pattern *regexp.Regexp
	err     error
}

var _ Check = (*LineCheck)(nil)

// NewLineCheck compiles rule into a check.
func NewLineCheck(rule Rule) *LineCheck {
	check := &LineCheck{rule: rule}
	if rule.Criterion == "" {
		check.err = errors.New("rule has no criterion")
		return check
	}
	expr, err := rule.Expression()
	if err != nil {
		check.err = err
		return check
	}
	check.pattern, check.err = regexp.Compile(expr)
	return check
}

func (c *LineCheck) Criterion() CriterionID { return c.rule.Criterion }

// Rule returns the rule the check was built from.
func (c *LineCheck) Rule() Rule { return c.rule }

// Err returns the compile error, if any.
func (c *LineCheck) Err() error { return c.err }

func (c *LineCheck) Run(doc Document) (Outcome, error) {
	if c.err != nil {
		return Indeterminate, fmt.Errorf("compile rule: %w", c.err)
	}
	if c.pattern == nil {
		return Indeterminate, errors.New("rule not compiled")
	}
	found := c.pattern.FindStringIndex(doc.Text()) != nil
	if found != c.rule.Invert {
		return Satisfied, nil
	}
	return Violated, nil
}

// PlaceholderCheck stands in for a criterion whose matching rule is not
// specified yet. It is provisional: it always reports Satisfied so the
// criterion still appears in every result.
type PlaceholderCheck struct {
	criterion CriterionID
}

var _ Check = PlaceholderCheck{}

// NewPlaceholderCheck returns an always-satisfied check for criterion.
func NewPlaceholderCheck(criterion CriterionID) PlaceholderCheck {
	return PlaceholderCheck{criterion: criterion}
}

func (p PlaceholderCheck) Criterion() CriterionID { return p.criterion }

func (p PlaceholderCheck) Run(Document) (Outcome, error) { return Satisfied, nil }

// CheckFunc adapts a function into a Check.
type CheckFunc struct {
	ID CriterionID
	Fn func(Document) (Outcome, error)
}

var _ Check = CheckFunc{}

func (f CheckFunc) Criterion() CriterionID { return f.ID }

func (f CheckFunc) Run(doc Document) (Outcome, error) {
	if f.Fn == nil {
		return Indeterminate, errors.New("check function is nil")
	}
	return f.Fn(doc)
}

// IsPlaceholder reports whether check is a provisional placeholder.
func IsPlaceholder(check Check) bool {
	switch check.(type) {
	case PlaceholderCheck, *PlaceholderCheck:
		return true
	}
	return false
}
