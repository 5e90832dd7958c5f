package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"cubby/internal/classify"
	"cubby/internal/config"
	"cubby/internal/logging"
	"cubby/internal/organize"
	"cubby/internal/services"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Sort a directory's files into category folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := executeRun(cmd, ctx, args[0], dryRun)
			if err != nil || report == nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview moves without touching any file")
	return cmd
}

// executeRun drives one organize pass. A nil report with a nil error means
// the run was aborted by a precondition failure, which is logged rather than
// surfaced as a process failure.
func executeRun(cmd *cobra.Command, ctx *commandContext, target string, dryRun bool) (*organize.Report, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target %q: %w", target, err)
	}

	out := cmd.OutOrStdout()
	showBar := !dryRun && !ctx.quiet() && shouldColorize(out)

	logger, err := logging.NewFromConfig(cfg, ctx.logPath(), ctx.quiet() || showBar)
	if err != nil {
		return nil, err
	}

	runCtx := services.WithRunID(cmd.Context(), uuid.NewString())

	opts := []organize.Option{organize.WithExclude(cfg.Organize.Exclude)}
	var bar *progressbar.ProgressBar
	if showBar {
		opts = append(opts, organize.WithProgress(func(done, total int) {
			if bar == nil {
				bar = newProgressBar(out, total)
			}
			_ = bar.Set(done)
		}))
	}

	organizer := organize.New(classify.New(buildSniffer(cfg), logger), logger, opts...)
	mode := organize.Apply
	if dryRun {
		mode = organize.DryRun
	}

	report, err := organizer.Organize(runCtx, path, mode)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if services.EndsRun(err) {
			logging.WithContext(runCtx, logger).Error("run aborted", logging.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}
