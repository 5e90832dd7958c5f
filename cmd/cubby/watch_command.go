package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cubby/internal/classify"
	"cubby/internal/config"
	"cubby/internal/logging"
	"cubby/internal/organize"
	"cubby/internal/services"
	"cubby/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <directory>",
		Short: "Keep a directory organized as files arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchProcess(cmd, ctx, args[0])
		},
	}
}

func runWatchProcess(cmd *cobra.Command, ctx *commandContext, target string) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return fmt.Errorf("resolve target %q: %w", target, err)
	}

	lock := flock.New(cfg.WatchLockPath())
	held, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watch lock: %w", err)
	}
	if !held {
		return fmt.Errorf("another cubby watch is already running (lock %s)", lock.Path())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	sessionID := uuid.NewString()
	logPath := ctx.logPath()
	if logPath == "" {
		logPath = cfg.WatchLogPath(sessionID)
	}
	logger, err := logging.NewFromConfig(cfg, logPath, ctx.quiet())
	if err != nil {
		return err
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "cubby-watch-*.log", Exclude: []string{logPath}},
	)

	organizer := organize.New(classify.New(buildSniffer(cfg), logger), logger,
		organize.WithExclude(cfg.Organize.Exclude))
	pass := func(passCtx context.Context) error {
		passCtx = services.WithRunID(passCtx, uuid.NewString())
		_, passErr := organizer.Organize(passCtx, path, organize.Apply)
		return passErr
	}

	watcher, err := watch.New(path, pass, logger,
		watch.WithSettle(cfg.WatchSettle()),
		watch.WithExclude(cfg.Organize.Exclude))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (session log: %s)\n", path, logPath)
	return watcher.Run(signalCtx)
}
