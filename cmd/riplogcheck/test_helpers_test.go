package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"riplogcheck/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	logDir     string
	historyDB  string
}

func setupCLITestEnv(t *testing.T, extraConfig string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("RIPLOGCHECK_PROFILE", "")
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
		historyDB:  filepath.Join(base, "data", "history.db"),
	}
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n\n[history]\npath = %q\n%s",
		filepath.Join(base, "data"), env.logDir, env.historyDB, extraConfig)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// writeLog writes an EAC fixture log into the env's rips directory.
func (e *cliTestEnv) writeLog(t *testing.T, name string, settings testsupport.EACSettings) string {
	t.Helper()
	path := filepath.Join(e.baseDir, "rips", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(testsupport.EACLog(settings)), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected exit code %d, got success", code)
	}
	if got := reportErrorCode(err); got != code {
		t.Fatalf("expected exit code %d, got %d (%v)", code, got, err)
	}
}

func burstSettings() testsupport.EACSettings {
	s := testsupport.SecureSettings()
	s.ReadMode = "Burst"
	return s
}
