package preflight

import (
	"context"
	"strings"

	"cubby/internal/config"
	"cubby/internal/deps"
)

// Result captures the outcome of a single environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the environment checks doctor reports on. A non-empty
// target adds an access check for the directory about to be organized.
func RunAll(ctx context.Context, cfg *config.Config, target string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if strings.TrimSpace(target) != "" {
		results = append(results, CheckDirectoryAccess("Target directory", target))
	}
	results = append(results, CheckSniffer(ctx, cfg))
	results = append(results, CheckWatchLock(cfg))
	return results
}

// Requirements returns the external binaries cubby relies on for the given
// configuration. The file(1) requirement turns optional when the sniffer is
// disabled.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "file",
			Command:     cfg.Sniffer.Binary,
			Description: "content type detection",
			Optional:    !cfg.Sniffer.Enabled,
			VersionArg:  "--version",
		},
	}
}

// CheckSystemDeps verifies the external binaries for the given configuration.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ctx, Requirements(cfg))
}
