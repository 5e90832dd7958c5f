package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cubby/internal/services"
)

const maxSuffixAttempts = 10000

// Resolver allocates collision-free destination names. It remembers every
// name it hands out, so planned moves cannot collide with each other even
// while a dry run leaves the filesystem untouched.
type Resolver struct {
	claimed map[string]struct{}
}

// NewResolver returns a Resolver with an empty claim set. Use one per run.
func NewResolver() *Resolver {
	return &Resolver{claimed: make(map[string]struct{})}
}

// Resolve returns the first free name for name inside dir, walking the
// stem_1.ext, stem_2.ext series until neither the filesystem nor an earlier
// claim occupies the candidate.
func (r *Resolver) Resolve(dir, name string) (string, error) {
	return r.resolve(dir, name, maxSuffixAttempts)
}

func (r *Resolver) resolve(dir, name string, limit int) (string, error) {
	stem, ext := splitName(name)
	candidate := name
	for attempt := 0; attempt <= limit; attempt++ {
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}
		full := filepath.Join(dir, candidate)
		if _, taken := r.claimed[full]; taken {
			continue
		}
		_, err := os.Lstat(full)
		if errors.Is(err, fs.ErrNotExist) {
			r.claimed[full] = struct{}{}
			return candidate, nil
		}
		if err != nil {
			return "", services.Wrap(services.ErrTransient, "resolver", "probe destination", candidate, err)
		}
	}
	return "", services.Wrap(services.ErrTransient, "resolver", "allocate name",
		fmt.Sprintf("exhausted suffix slots for %s", name), nil)
}

// splitName separates the final extension from the rest of the name the way
// collision suffixes expect: archive.tar.gz becomes ("archive.tar", ".gz")
// and dotless names keep an empty extension.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
