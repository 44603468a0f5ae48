package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"riplogcheck/internal/config"
	"riplogcheck/internal/history"
	"riplogcheck/internal/logging"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureLogger builds the command logger. Lines always go to the log file in
// the configured log directory; --verbose adds stderr.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			c.logger, c.loggerErr = logging.NewFromConfig(cfg)
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "riplogcheck.log")},
		})
	})
	return c.logger, c.loggerErr
}

var errHistoryDisabled = errors.New("history is disabled (set history.enabled = true in the config)")

// openHistory opens the configured history store. Callers close it.
func (c *commandContext) openHistory(ctx context.Context) (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errHistoryDisabled
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return history.Open(ctx, cfg.History.Path, history.WithLogger(logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
