package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cubby/internal/config"
	"cubby/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [directory]",
		Short: "Diagnose the environment cubby depends on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve target %q: %w", args[0], err)
				}
				target = expanded
			}
			return runDoctor(cmd, ctx, target)
		},
	}
}

func runDoctor(cmd *cobra.Command, ctx *commandContext, target string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	problems := 0

	for _, line := range renderSectionHeader("Environment", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, result := range preflight.RunAll(cmd.Context(), cfg, target) {
		kind := statusOK
		if !result.Passed {
			kind = statusError
			problems++
		}
		fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}

	for _, line := range renderSectionHeader("External tools", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
		kind := statusOK
		message := status.Version
		if message == "" {
			message = "found"
		}
		if !status.Available {
			message = status.Detail
			if status.Optional {
				kind = statusWarn
			} else {
				kind = statusError
				problems++
			}
		}
		fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
	}

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	fmt.Fprintln(out, "All checks passed")
	return nil
}
