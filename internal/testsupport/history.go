package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"riplogcheck/internal/history"
)

// MustOpenHistory opens a history store in a temp dir and closes it when
// the test ends.
func MustOpenHistory(t testing.TB) *history.Store {
	t.Helper()
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
