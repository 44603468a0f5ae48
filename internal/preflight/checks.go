package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"riplogcheck/internal/config"
	"riplogcheck/internal/history"
	"riplogcheck/internal/profiles"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckProfile builds the configured checklist profile and verifies that
// every rule compiles.
func CheckProfile(cfg *config.Config) Result {
	const name = "Checklist profile"

	profile, err := profiles.FromConfig(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if problems := profiles.Problems(profile); len(problems) > 0 {
		msgs := make([]string, 0, len(problems))
		for _, problem := range problems {
			msgs = append(msgs, problem.Error())
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s: invalid rules: %s", profile.Name, strings.Join(msgs, "; "))}
	}
	if _, err := profile.Engine(nil); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	detail := fmt.Sprintf("%s (%d criteria", profile.Name, len(profile.Checks))
	if n := len(profile.Placeholders()); n > 0 {
		detail += fmt.Sprintf(", %d provisional", n)
	}
	return Result{Name: name, Passed: true, Detail: detail + ")"}
}

// CheckHistory opens the history database and counts its evaluations.
func CheckHistory(ctx context.Context, path string) Result {
	const name = "History database"

	store, err := history.Open(ctx, path)
	if err != nil {
		if errors.Is(err, history.ErrSchemaMismatch) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: schema mismatch, delete the file to reset)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d evaluations)", path, count)}
}
