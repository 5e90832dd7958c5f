package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"cubby/internal/logging"
	"cubby/internal/services"
)

func noopPass(context.Context) error { return nil }

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitForPass(t *testing.T, passes <-chan struct{}) {
	t.Helper()
	select {
	case <-passes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for organize pass")
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := New("  ", noopPass, logging.NewNop()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewRequiresPassCallback(t *testing.T) {
	if _, err := New(t.TempDir(), nil, logging.NewNop()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTriggersFiltersEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "report.pdf"), "content")
	writeFile(t, filepath.Join(dir, "skip.tmp"), "content")
	writeFile(t, filepath.Join(dir, ".hidden"), "content")
	if err := os.Mkdir(filepath.Join(dir, "Documents"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := New(dir, noopPass, logging.NewNop(), WithExclude([]string{"*.tmp"}))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"regular create", fsnotify.Event{Name: filepath.Join(dir, "report.pdf"), Op: fsnotify.Create}, true},
		{"regular write", fsnotify.Event{Name: filepath.Join(dir, "report.pdf"), Op: fsnotify.Write}, true},
		{"hidden file", fsnotify.Event{Name: filepath.Join(dir, ".hidden"), Op: fsnotify.Create}, false},
		{"excluded name", fsnotify.Event{Name: filepath.Join(dir, "skip.tmp"), Op: fsnotify.Create}, false},
		{"directory", fsnotify.Event{Name: filepath.Join(dir, "Documents"), Op: fsnotify.Create}, false},
		{"moved away", fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Rename}, false},
		{"removed", fsnotify.Event{Name: filepath.Join(dir, "report.pdf"), Op: fsnotify.Remove}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(dir, "report.pdf"), Op: fsnotify.Chmod}, false},
	}
	for _, tc := range cases {
		if got := w.triggers(tc.event); got != tc.want {
			t.Errorf("%s: triggers=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRunOrganizesAfterSettle(t *testing.T) {
	dir := t.TempDir()
	passes := make(chan struct{}, 8)
	pass := func(context.Context) error {
		passes <- struct{}{}
		return nil
	}

	w, err := New(dir, pass, logging.NewNop(), WithSettle(50*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	waitForPass(t, passes)

	writeFile(t, filepath.Join(dir, "drop.txt"), "payload")
	waitForPass(t, passes)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}

	if err := w.Run(ctx); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected second run to be rejected, got %v", err)
	}
}

func TestRunFailsForMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), noopPass, logging.NewNop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	runErr := w.Run(context.Background())
	if runErr == nil {
		t.Fatal("expected error for missing directory")
	}
	if !services.EndsRun(runErr) {
		t.Fatalf("expected precondition failure, got %v", runErr)
	}
}
