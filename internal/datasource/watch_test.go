package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scorecard.json")
	if err := os.WriteFile(path, []byte(`{"US": {"2023": {}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherDetectsChangeWhilePolling(t *testing.T) {
	path := writeTempDataset(t)

	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounce(20*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("forced polling watcher reports fsnotify mode")
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"US": {"2023": {}, "2024": {}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitForChange(t, w, 2*time.Second) {
		t.Fatal("change was not detected")
	}
}

func TestWatcherDebounceCoalesces(t *testing.T) {
	path := writeTempDataset(t)

	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(10*time.Millisecond),
		WithDebounce(150*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		payload := []byte(`{"US": {"2023": {}}}` + string(make([]byte, i+1)))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(30 * time.Millisecond)
	}

	if !waitForChange(t, w, 2*time.Second) {
		t.Fatal("change was not detected")
	}
	// The burst collapses into a single debounced signal.
	select {
	case <-w.Changed():
		t.Error("burst of writes produced more than one notification")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherStartTwice(t *testing.T) {
	w, err := NewWatcher(writeTempDataset(t), WithForcePoll(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start() = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	path := writeTempDataset(t)

	errCh := make(chan error, 1)
	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithOnError(func(err error) {
			select {
			case errCh <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errCh:
		if err != ErrFileRemoved {
			t.Errorf("err = %v, want ErrFileRemoved", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("removal was not reported")
	}
}
