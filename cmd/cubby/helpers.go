package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cubby/internal/category"
	"cubby/internal/config"
	"cubby/internal/organize"
	"cubby/internal/services/magic"
)

func buildSniffer(cfg *config.Config) magic.Sniffer {
	if cfg == nil || !cfg.Sniffer.Enabled {
		return nil
	}
	return magic.New(cfg.Sniffer.Binary, cfg.Sniffer.TimeoutSeconds)
}

func printSummary(out io.Writer, report *organize.Report) {
	verb := "Moved"
	if report.Mode == organize.DryRun {
		verb = "Planned"
	}

	counts := report.CategoryCounts()
	sizes := report.CategoryBytes()
	rows := make([][]string, 0, len(counts))
	for _, cat := range category.All() {
		if counts[cat] == 0 {
			continue
		}
		rows = append(rows, []string{
			string(cat),
			strconv.Itoa(counts[cat]),
			humanize.IBytes(uint64(sizes[cat])),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Category", verb, "Size"}, rows, 1, 2))
	}

	fmt.Fprintf(out, "%d %s, %d skipped, %d failed in %s\n",
		len(report.Moves), strings.ToLower(verb), len(report.Skipped), len(report.Failures),
		report.Elapsed().Round(time.Millisecond))
	printFailures(out, report)
}

func printFailures(out io.Writer, report *organize.Report) {
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "  failed: %s: %v\n", failure.Source, failure.Err)
	}
}
