package testsupport

import (
	"path/filepath"
	"testing"

	"riplogcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Path = filepath.Join(base, "data", "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithHistoryDisabled turns the history store off.
func WithHistoryDisabled() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = false
	}
}

// WithDeduction overrides one deduction weight.
func WithDeduction(criterion string, weight int) ConfigOption {
	return func(c *config.Config) {
		if c.Checklist.Deductions == nil {
			c.Checklist.Deductions = map[string]int{}
		}
		c.Checklist.Deductions[criterion] = weight
	}
}

// WithRule appends a rule override.
func WithRule(rule config.Rule) ConfigOption {
	return func(c *config.Config) {
		c.Checklist.Rules = append(c.Checklist.Rules, rule)
	}
}
