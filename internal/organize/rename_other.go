//go:build !linux

package organize

// renameNoClobber approximates no-clobber semantics with a probe before the
// rename on platforms without an atomic variant.
func renameNoClobber(src, dst string) error {
	return renameProbed(src, dst)
}
