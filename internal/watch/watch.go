package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"cubby/internal/logging"
	"cubby/internal/services"
)

const defaultSettle = 2 * time.Second

// PassFunc runs one organize pass over the watched directory.
type PassFunc func(ctx context.Context) error

// Watcher monitors a single directory and triggers an organize pass once
// filesystem activity settles. Run must be called exactly once.
type Watcher struct {
	dir     string
	settle  time.Duration
	exclude []string
	pass    PassFunc
	logger  *slog.Logger
	started atomic.Bool
}

// Option adjusts watcher construction.
type Option func(*Watcher)

// WithSettle overrides the quiet window applied to filesystem events.
// Non-positive values keep the default.
func WithSettle(settle time.Duration) Option {
	return func(w *Watcher) {
		if settle > 0 {
			w.settle = settle
		}
	}
}

// WithExclude sets glob patterns whose matching file names never trigger a
// pass.
func WithExclude(patterns []string) Option {
	return func(w *Watcher) {
		w.exclude = patterns
	}
}

// New creates a watcher for dir that invokes pass after events settle.
func New(dir string, pass PassFunc, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrValidation, "watcher", "configure", "watch directory is required", nil)
	}
	if pass == nil {
		return nil, services.Wrap(services.ErrValidation, "watcher", "configure", "pass callback is required", nil)
	}

	w := &Watcher{
		dir:    dir,
		settle: defaultSettle,
		pass:   pass,
		logger: logging.NewComponentLogger(logger, "watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is cancelled, organizing the directory whenever
// activity settles. An initial pass picks up files that arrived before the
// watch began.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return services.Wrap(services.ErrValidation, "watcher", "run", "watcher already running", nil)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrTransient, "watcher", "run", "create filesystem watcher", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return services.Wrap(services.ErrPrecondition, "watcher", "run", fmt.Sprintf("watch %s", w.dir), err)
	}

	runLogger := logging.WithContext(ctx, w.logger)
	runLogger.Info("watch started",
		logging.String("directory", w.dir),
		logging.Duration("settle", w.settle))

	w.runPass(ctx, runLogger)

	debouncer := NewDebouncer(w.settle)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			runLogger.Info("watch stopped")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return services.Wrap(services.ErrTransient, "watcher", "run", "event channel closed", nil)
			}
			if !w.triggers(event) {
				continue
			}
			runLogger.Debug("change detected",
				logging.String("file", filepath.Base(event.Name)),
				logging.String("op", event.Op.String()))
			debouncer.Record(filepath.Base(event.Name))
		case err, ok := <-fsw.Errors:
			if !ok {
				return services.Wrap(services.ErrTransient, "watcher", "run", "error channel closed", nil)
			}
			runLogger.Warn("watch error; continuing", logging.Error(err))
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// A settled rescan recovers anything the kernel dropped.
				debouncer.Record(w.dir)
			}
		case names := <-debouncer.Output():
			runLogger.Info("changes settled", logging.Int("files", len(names)))
			w.runPass(ctx, runLogger)
		}
	}
}

func (w *Watcher) runPass(ctx context.Context, runLogger *slog.Logger) {
	if ctx.Err() != nil {
		return
	}
	if err := w.pass(ctx); err != nil {
		runLogger.Error("organize pass failed", logging.Error(err))
	}
}

// triggers reports whether the event concerns a file an organize pass would
// touch. Events for moves and deletions never trigger, which keeps the
// watcher from chasing its own organize passes.
func (w *Watcher) triggers(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if w.excluded(name) {
		return false
	}
	info, err := os.Lstat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return true
}

func (w *Watcher) excluded(name string) bool {
	for _, pattern := range w.exclude {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
