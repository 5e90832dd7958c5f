package organize

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"cubby/internal/classify"
	"cubby/internal/logging"
	"cubby/internal/services"
)

// Mode selects whether a run mutates the filesystem.
type Mode string

const (
	// DryRun makes every decision but touches nothing.
	DryRun Mode = "dry-run"
	// Apply makes the same decisions and executes them.
	Apply Mode = "apply"
)

// ProgressFunc receives per-entry progress during a run.
type ProgressFunc func(done, total int)

// Organizer walks one directory level and routes every regular, visible file
// into its category folder.
type Organizer struct {
	classifier *classify.Classifier
	logger     *slog.Logger
	exclude    []string
	progress   ProgressFunc
}

// Option adjusts organizer construction.
type Option func(*Organizer)

// WithExclude leaves direct children whose names match any of the given glob
// patterns untouched.
func WithExclude(patterns []string) Option {
	return func(o *Organizer) { o.exclude = patterns }
}

// WithProgress installs a callback invoked after each directory entry is
// handled.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Organizer) { o.progress = fn }
}

// New constructs an Organizer around the given classifier.
func New(classifier *classify.Classifier, logger *slog.Logger, opts ...Option) *Organizer {
	o := &Organizer{
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Organize performs one pass over target. Dry-run and apply share every
// decision; only the mutation step differs. The returned error is non-nil
// only when the whole run could not proceed or was interrupted; per-file
// problems land in the report instead.
func (o *Organizer) Organize(ctx context.Context, target string, mode Mode) (*Report, error) {
	ctx = services.WithMode(ctx, string(mode))
	runLogger := logging.WithContext(ctx, o.logger)

	report := &Report{Target: target, Mode: mode, Started: time.Now()}
	if id, ok := services.RunIDFromContext(ctx); ok {
		report.RunID = id
	}

	entries, err := openTarget(target)
	if err != nil {
		report.Finished = time.Now()
		return report, err
	}

	resolver := NewResolver()
	mover := NewMover(resolver, o.logger)

	runLogger.Info("run started",
		logging.String("target", target),
		logging.Int("entries", len(entries)),
	)

	total := len(entries)
	for i, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			report.Finished = time.Now()
			return report, services.Wrap(services.ErrTransient, "organizer", "scan", "run interrupted", ctxErr)
		}
		o.handleEntry(ctx, runLogger, resolver, mover, target, entry, mode, report)
		if o.progress != nil {
			o.progress(i+1, total)
		}
	}

	report.Finished = time.Now()
	runLogger.Info("run completed",
		logging.Int("moved", len(report.Moves)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Int("failed", len(report.Failures)),
		logging.Duration("elapsed", report.Elapsed()),
	)
	return report, nil
}

// openTarget validates the run precondition and enumerates the directory. The
// listing order is whatever the filesystem returns; nothing downstream
// depends on it.
func openTarget(target string) ([]fs.DirEntry, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "walker", "open target", "Target does not exist", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrPrecondition, "walker", "open target", "Target is not a directory", nil)
	}
	dir, err := os.Open(target)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "walker", "open target", "Target is not readable", err)
	}
	defer dir.Close()
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "walker", "scan target", "Failed to enumerate directory", err)
	}
	return entries, nil
}

func (o *Organizer) handleEntry(ctx context.Context, logger *slog.Logger, resolver *Resolver, mover *Mover, target string, entry fs.DirEntry, mode Mode, report *Report) {
	name := entry.Name()

	if entry.IsDir() {
		// Category folders and unrelated subdirectories stay where they are.
		return
	}
	if strings.HasPrefix(name, ".") {
		logger.Info("skipping hidden file", logging.String(logging.FieldFile, name))
		report.Skipped = append(report.Skipped, name)
		return
	}
	if pattern, ok := o.excludedBy(name); ok {
		logger.Info("skipping excluded file",
			logging.String(logging.FieldFile, name),
			logging.String("pattern", pattern),
		)
		report.Skipped = append(report.Skipped, name)
		return
	}
	if !entry.Type().IsRegular() {
		logger.Debug("skipping non-regular entry",
			logging.String(logging.FieldFile, name),
			logging.String("type", entry.Type().String()),
		)
		report.Skipped = append(report.Skipped, name)
		return
	}

	info, err := entry.Info()
	if err != nil {
		o.recordFailure(logger, report, name, services.Wrap(services.ErrTransient, "walker", "stat", name, err))
		return
	}

	fileCtx := services.WithFile(ctx, name)
	decision := o.classifier.Classify(fileCtx, filepath.Join(target, name))

	folder := filepath.Join(target, decision.Category.Folder())
	resolved, err := resolver.Resolve(folder, name)
	if err != nil {
		o.recordFailure(logger, report, name, err)
		return
	}

	move := Move{
		Source:      name,
		Category:    decision.Category,
		Destination: resolved,
		Size:        info.Size(),
		Via:         decision.Via,
	}

	if mode == Apply {
		if err := mover.EnsureFolder(folder); err != nil {
			o.recordFailure(logger, report, name, err)
			return
		}
		finalName, err := mover.Place(filepath.Join(target, name), folder, name, resolved)
		if err != nil {
			o.recordFailure(logger, report, name, err)
			return
		}
		move.Destination = finalName
		logger.Info("moved file",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldCategory, string(move.Category)),
			logging.String("destination", finalName),
			logging.Int64("size", move.Size),
		)
	} else {
		logger.Info("planned move",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldCategory, string(move.Category)),
			logging.String("destination", resolved),
			logging.Int64("size", move.Size),
		)
	}

	report.Moves = append(report.Moves, move)
}

func (o *Organizer) excludedBy(name string) (string, bool) {
	for _, pattern := range o.exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}

func (o *Organizer) recordFailure(logger *slog.Logger, report *Report, name string, err error) {
	logger.Error("file failed; continuing",
		logging.String(logging.FieldFile, name),
		logging.Error(err),
	)
	report.Failures = append(report.Failures, Failure{Source: name, Err: err})
}
