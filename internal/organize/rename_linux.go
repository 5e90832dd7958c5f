//go:build linux

package organize

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// renameNoClobber moves src to dst while refusing to replace an existing
// destination entry. Filesystems that reject RENAME_NOREPLACE fall back to a
// probe-then-rename with a small unavoidable window.
func renameNoClobber(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOSYS) {
		return renameProbed(src, dst)
	}
	return &os.LinkError{Op: "rename", Old: src, New: dst, Err: err}
}
