package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"riplogcheck/internal/config"
	"riplogcheck/internal/logging"
)

func newFileLogger(t *testing.T) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	return logPath, func() string {
		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "checklist").Info("check evaluated",
		logging.String(logging.FieldCriterion, "insecure-read-mode"),
		logging.String("detail", "has spaces"))

	content := read()
	if !strings.Contains(content, "INFO checklist: check evaluated") {
		t.Fatalf("expected level, component and message, got %q", content)
	}
	if !strings.Contains(content, "criterion=insecure-read-mode") {
		t.Fatalf("expected criterion field, got %q", content)
	}
	if !strings.Contains(content, `detail="has spaces"`) {
		t.Fatalf("expected quoted value, got %q", content)
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should be rendered as a prefix, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if content := read(); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	content := read()
	if strings.Contains(content, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", content)
	}
	if !strings.Contains(content, "WARN shown") {
		t.Fatalf("expected warn line, got %q", content)
	}
}

func TestJSONLoggerWritesStructuredLines(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("evaluated", logging.Int("deducted_points", 7), logging.Error(errors.New("boom")))

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &payload); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["deducted_points"] != float64(7) {
		t.Fatalf("unexpected deducted_points: %v", payload["deducted_points"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigCreatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, "riplogcheck.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"bogus":   "INFO",
	}
	for input, want := range cases {
		if got := logging.ParseLevel(input).String(); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "history unavailable", "history_open_failed")
	content := read()
	for _, want := range []string{"event_type=history_open_failed", "error_hint=", "impact="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}
