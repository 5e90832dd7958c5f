package organize

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"cubby/internal/fileutil"
	"cubby/internal/logging"
	"cubby/internal/services"
)

// renameRetries bounds how often a move re-resolves its destination after
// losing a race to an external writer.
const renameRetries = 5

// Mover executes placements: it creates category folders on demand and moves
// files without ever replacing an existing destination entry.
type Mover struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewMover constructs a Mover sharing the run's resolver so re-resolved names
// stay inside the same claim set.
func NewMover(resolver *Resolver, logger *slog.Logger) *Mover {
	return &Mover{resolver: resolver, logger: logging.NewComponentLogger(logger, "mover")}
}

// EnsureFolder creates the category folder when missing. A same-named
// non-directory entry makes every file routed there fail individually.
func (m *Mover) EnsureFolder(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "mover", "ensure folder", filepath.Base(path), err)
	}
	return nil
}

// Place moves src into dstDir under resolved. When an external writer claims
// the destination between resolution and rename, the name is re-resolved from
// name and the rename retried a bounded number of times. The final name is
// returned.
func (m *Mover) Place(src, dstDir, name, resolved string) (string, error) {
	finalName := resolved
	for attempt := 0; ; attempt++ {
		dst := filepath.Join(dstDir, finalName)
		err := m.placeOnce(src, dst)
		if err == nil {
			return finalName, nil
		}
		if errors.Is(err, fs.ErrExist) && attempt < renameRetries {
			m.logger.Warn("destination appeared mid-move; re-resolving",
				logging.String("destination", dst),
			)
			next, rerr := m.resolver.Resolve(dstDir, name)
			if rerr != nil {
				return "", rerr
			}
			finalName = next
			continue
		}
		return "", services.Wrap(services.ErrTransient, "mover", "move", name, err)
	}
}

func (m *Mover) placeOnce(src, dst string) error {
	err := renameNoClobber(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		return m.copyAcross(src, dst)
	}
	return err
}

// copyAcross handles destinations on a different filesystem: an exclusive
// create keeps the no-clobber guarantee, then the source is removed.
func (m *Mover) copyAcross(src, dst string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Lstat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fileutil.CopyFileExclusive(src, dst, mode); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		m.logger.Warn("failed to remove source file after copy", logging.Error(err))
	}
	return nil
}

// renameProbed checks the destination immediately before renaming. The gap
// between probe and rename is the residual race window on paths that cannot
// use an atomic no-clobber rename.
func renameProbed(src, dst string) error {
	_, err := os.Lstat(dst)
	if err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: err}
	}
	return os.Rename(src, dst)
}
