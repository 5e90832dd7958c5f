package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cubby/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The content sniffer starts disabled so tests stay hermetic; opt into a
// stubbed binary with WithStubbedSniffer.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Sniffer.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExcludes sets the organize exclude patterns on the test config.
func WithExcludes(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Exclude = patterns
	}
}

// WithStubbedSniffer writes a stub file(1) replacement that prints the given
// description for every invocation, prepends it to PATH, and enables the
// sniffer on the test config.
func WithStubbedSniffer(description string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\necho '" + description + "'\n")
		target := filepath.Join(binDir, "file")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub file binary: %v", err)
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})

		b.cfg.Sniffer.Enabled = true
		b.cfg.Sniffer.Binary = "file"
	}
}
