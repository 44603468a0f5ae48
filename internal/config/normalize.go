package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeChecklist()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeChecklist() {
	c.Checklist.Profile = strings.ToLower(strings.TrimSpace(c.Checklist.Profile))
	if value, ok := os.LookupEnv("RIPLOGCHECK_PROFILE"); ok && strings.TrimSpace(value) != "" {
		c.Checklist.Profile = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Checklist.Profile == "" {
		c.Checklist.Profile = defaultProfile
	}
	if len(c.Checklist.Deductions) > 0 {
		normalized := make(map[string]int, len(c.Checklist.Deductions))
		for key, weight := range c.Checklist.Deductions {
			normalized[normalizeCriterionKey(key)] = weight
		}
		c.Checklist.Deductions = normalized
	}
	for i := range c.Checklist.Rules {
		rule := &c.Checklist.Rules[i]
		rule.Criterion = normalizeCriterionKey(rule.Criterion)
		rule.Label = strings.TrimSpace(rule.Label)
		accepted := rule.Accepted[:0]
		for _, value := range rule.Accepted {
			if value = strings.TrimSpace(value); value != "" {
				accepted = append(accepted, value)
			}
		}
		rule.Accepted = accepted
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.DataDir, defaultHistoryFile)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeBatch() {
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = defaultBatchConcurrent
	}
	if c.Batch.MaxFileBytes == 0 {
		c.Batch.MaxFileBytes = defaultMaxFileBytes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeCriterionKey accepts "Read_Mode"-style keys as well as the
// canonical kebab-case IDs.
func normalizeCriterionKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(key, "_", "-")
}
