package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <directory>",
		Short: "Show where each file would go without moving anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := executeRun(cmd, ctx, args[0], true)
			if err != nil || report == nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(report.Moves) == 0 {
				fmt.Fprintln(out, "Nothing to organize")
				return nil
			}

			rows := make([][]string, 0, len(report.Moves))
			for _, move := range report.Moves {
				rows = append(rows, []string{
					move.Source,
					string(move.Category),
					filepath.Join(move.Category.Folder(), move.Destination),
					humanize.IBytes(uint64(move.Size)),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"File", "Category", "Destination", "Size"}, rows, 3))
			fmt.Fprintf(out, "%d planned, %d skipped, %d failed (%s total)\n",
				len(report.Moves), len(report.Skipped), len(report.Failures),
				humanize.IBytes(uint64(report.TotalBytes())))
			printFailures(out, report)
			return nil
		},
	}
}
