package testsupport

import (
	"context"
	"testing"

	"aircast/internal/config"
	"aircast/internal/runjournal"
)

// MustOpenStore opens a runjournal.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *runjournal.Store {
	t.Helper()

	store, err := runjournal.Open(cfg)
	if err != nil {
		t.Fatalf("runjournal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginRun records a pending run for tests using the provided store.
func BeginRun(t testing.TB, store *runjournal.Store, runID, postID, mode string) *runjournal.Run {
	t.Helper()

	run, err := store.Begin(context.Background(), runID, postID, mode, "")
	if err != nil {
		t.Fatalf("store.Begin: %v", err)
	}
	return run
}
