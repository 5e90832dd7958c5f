package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"cubby/internal/config"
	"cubby/internal/services/magic"
)

// CheckDirectoryAccess verifies the path exists, is a directory, and grants
// read, write, and traverse permissions.
func CheckDirectoryAccess(name, path string) Result {
	result := Result{Name: name}
	if strings.TrimSpace(path) == "" {
		result.Detail = "path not configured"
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Detail = fmt.Sprintf("%s is not a directory", path)
		return result
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		result.Detail = fmt.Sprintf("insufficient permissions on %s: %v", path, err)
		return result
	}

	result.Passed = true
	result.Detail = path
	return result
}

// CheckSniffer exercises the configured file(1) binary against a scratch file
// so doctor reports the same failure an organize run would hit.
func CheckSniffer(ctx context.Context, cfg *config.Config) Result {
	result := Result{Name: "Content sniffer"}
	if !cfg.Sniffer.Enabled {
		result.Passed = true
		result.Detail = "disabled"
		return result
	}

	binary := strings.TrimSpace(cfg.Sniffer.Binary)
	if binary == "" {
		result.Detail = "sniffer.binary not configured"
		return result
	}
	if _, err := exec.LookPath(binary); err != nil {
		result.Detail = fmt.Sprintf("binary %q not found in PATH", binary)
		return result
	}

	scratch, err := os.CreateTemp("", "cubby-preflight-*")
	if err != nil {
		result.Detail = fmt.Sprintf("scratch file: %v", err)
		return result
	}
	path := scratch.Name()
	defer os.Remove(path)
	if _, err := scratch.WriteString("cubby preflight probe\n"); err != nil {
		scratch.Close()
		result.Detail = fmt.Sprintf("scratch file: %v", err)
		return result
	}
	if err := scratch.Close(); err != nil {
		result.Detail = fmt.Sprintf("scratch file: %v", err)
		return result
	}

	sniffed, err := magic.New(binary, cfg.Sniffer.TimeoutSeconds).Sniff(ctx, path)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	result.Passed = true
	result.Detail = sniffed.Description
	return result
}

// CheckWatchLock reports whether another watch session currently holds the
// session lock. Both outcomes pass; the detail distinguishes them.
func CheckWatchLock(cfg *config.Config) Result {
	result := Result{Name: "Watch session"}

	lock := flock.New(cfg.WatchLockPath())
	held, err := lock.TryLock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Passed = true
			result.Detail = "no active session"
			return result
		}
		result.Detail = fmt.Sprintf("lock probe failed: %v", err)
		return result
	}
	if !held {
		result.Passed = true
		result.Detail = "another cubby watch holds the session lock"
		return result
	}
	defer func() {
		_ = lock.Unlock()
	}()

	result.Passed = true
	result.Detail = "no active session"
	return result
}
