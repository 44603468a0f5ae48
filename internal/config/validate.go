package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// maxDeductionWeight matches the checklist package's per-criterion ceiling.
const maxDeductionWeight = math.MaxInt32

// Validate ensures the configuration is usable. Criterion IDs are checked
// against the selected profile when the profile is built, not here.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateChecklist(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateChecklist() error {
	if c.Checklist.Profile == "" {
		return errors.New("checklist.profile must be set")
	}
	for key, weight := range c.Checklist.Deductions {
		if key == "" {
			return errors.New("checklist.deductions contains an empty criterion")
		}
		if weight < 0 {
			return fmt.Errorf("checklist.deductions.%s must be >= 0", key)
		}
		if weight > maxDeductionWeight {
			return fmt.Errorf("checklist.deductions.%s must be <= %d", key, maxDeductionWeight)
		}
	}
	seen := make(map[string]struct{}, len(c.Checklist.Rules))
	for i, rule := range c.Checklist.Rules {
		if rule.Criterion == "" {
			return fmt.Errorf("checklist.rules[%d].criterion must be set", i)
		}
		if _, dup := seen[rule.Criterion]; dup {
			return fmt.Errorf("checklist.rules[%d]: duplicate rule for %s", i, rule.Criterion)
		}
		seen[rule.Criterion] = struct{}{}
		if strings.TrimSpace(rule.Pattern) != "" {
			continue
		}
		if rule.Label == "" {
			return fmt.Errorf("checklist.rules[%d] (%s): label or pattern must be set", i, rule.Criterion)
		}
		if len(rule.Accepted) == 0 {
			return fmt.Errorf("checklist.rules[%d] (%s): accepted must list at least one value", i, rule.Criterion)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	if c.History.Retention < 0 {
		return errors.New("history.retention must be >= 0")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Concurrency <= 0 {
		return errors.New("batch.concurrency must be positive")
	}
	if c.Batch.MaxFileBytes <= 0 {
		return errors.New("batch.max_file_bytes must be positive")
	}
	return nil
}
