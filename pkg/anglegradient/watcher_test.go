package anglegradient

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it holds or timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDocumentWatcher_DetectsFileChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradient.yaml")
	writeFile(t, path, "initial content")

	var changes atomic.Int32
	var lastError atomic.Value

	watcher, err := newDocumentWatcher(path, 50*time.Millisecond,
		func() error {
			changes.Add(1)
			return nil
		},
		func(err error) { lastError.Store(err) },
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "modified content")

	if !waitFor(t, 2*time.Second, func() bool { return changes.Load() == 1 }) {
		t.Errorf("expected 1 change, got %d", changes.Load())
	}
	if err := lastError.Load(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDocumentWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradient.lua")
	writeFile(t, path, "initial")

	var changes atomic.Int32
	watcher, err := newDocumentWatcher(path, 150*time.Millisecond, func() error {
		changes.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		writeFile(t, path, "write")
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	if count := changes.Load(); count != 1 {
		t.Errorf("expected 1 debounced change, got %d", count)
	}
}

func TestDocumentWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.yaml")
	writeFile(t, path, "doc")

	var changes atomic.Int32
	watcher, err := newDocumentWatcher(path, 50*time.Millisecond, func() error {
		changes.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.yaml"), "unrelated")
	time.Sleep(300 * time.Millisecond)

	if count := changes.Load(); count != 0 {
		t.Errorf("expected no changes, got %d", count)
	}
}

func TestDocumentWatcher_ReportsChangeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradient.yaml")
	writeFile(t, path, "doc")

	boom := errors.New("reload failed")
	errs := make(chan error, 1)
	watcher, err := newDocumentWatcher(path, 50*time.Millisecond,
		func() error { return boom },
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "changed")

	select {
	case err := <-errs:
		if !errors.Is(err, boom) {
			t.Errorf("got error %v, want %v", err, boom)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error was not reported")
	}
}

func TestDocumentWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradient.yaml")
	writeFile(t, path, "doc")

	idle, err := newDocumentWatcher(path, 0, nil, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if idle.debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v, want %v", idle.debounce, DefaultWatchDebounce)
	}
	idle.Stop()
	idle.Stop()

	running, err := newDocumentWatcher(path, 0, nil, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	running.Start()
	running.Start()
	running.Stop()
	running.Stop()
}

func TestDocumentWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gradient.yaml")
	if _, err := newDocumentWatcher(path, 0, nil, nil); err == nil {
		t.Error("expected error for a missing directory")
	}
}
