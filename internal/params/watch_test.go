package params

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/bloom/internal/flower"
)

// waitForVersion polls until the store passes version or the deadline expires.
func waitForVersion(s *Store, version uint64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.Version() > version {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func startWatcher(t *testing.T, path string, store *Store, log *zap.Logger) {
	t.Helper()

	w, err := NewWatcher(path, store, log)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watcher returned error: %v", err)
		}
	})
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	if err := SavePreset(path, flower.DefaultParameters()); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	store := NewStore(flower.DefaultParameters())
	startWatcher(t, path, store, nil)

	if err := os.WriteFile(path, []byte("petal_count: 11\ntwist: 1.5\n"), 0644); err != nil {
		t.Fatalf("failed to update preset: %v", err)
	}

	if !waitForVersion(store, 0, 5*time.Second) {
		t.Fatal("store was not updated after preset change")
	}

	// Several write events may arrive; wait for the final content.
	deadline := time.Now().Add(5 * time.Second)
	p := store.Snapshot()
	for (p.PetalCount != 11 || p.Twist != 1.5) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		p = store.Snapshot()
	}
	if p.PetalCount != 11 || p.Twist != 1.5 {
		t.Errorf("unexpected reloaded parameters %+v", p)
	}
}

func TestWatcherKeepsSnapshotOnBadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	if err := SavePreset(path, flower.DefaultParameters()); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	store := NewStore(flower.DefaultParameters())
	startWatcher(t, path, store, zap.New(core))

	if err := os.WriteFile(path, []byte("petal_count: [oops\n"), 0644); err != nil {
		t.Fatalf("failed to update preset: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for logs.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if logs.Len() == 0 {
		t.Fatal("expected a warning for the bad preset")
	}
	if store.Version() != 0 {
		t.Errorf("bad preset changed the store (version %d)", store.Version())
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	if err := SavePreset(path, flower.DefaultParameters()); err != nil {
		t.Fatalf("failed to write preset: %v", err)
	}

	store := NewStore(flower.DefaultParameters())
	startWatcher(t, path, store, nil)

	other := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(other, []byte("petal_count: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}

	if waitForVersion(store, 0, 300*time.Millisecond) {
		t.Errorf("unrelated file updated the store: %+v", store.Snapshot())
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	store := NewStore(flower.DefaultParameters())
	if _, err := NewWatcher("/nonexistent/dir/preset.yaml", store, nil); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
