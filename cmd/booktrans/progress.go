package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show where every chapter stands",
	Args:  cobra.NoArgs,
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		report, err := svc.Progress()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s: %d chapters, %s source words\n\n",
			report.BookName, report.TotalChapters,
			humanize.Comma(int64(report.TotalWords)))

		for _, ch := range report.Chapters {
			fmt.Fprintf(out, "%8s  %s %5.1f%%  %d/%d  %-9s %s\n",
				ch.Key, progressBar(ch.Percent), ch.Percent,
				ch.Translated, ch.Segments, ch.Status, ch.Title)
		}

		fmt.Fprintf(out, "\n%d combined, %d fully translated, %d in progress, %d untouched\n",
			report.Combined, report.Done, report.InProgress, report.Untouched)
		if report.NextKey != "" {
			fmt.Fprintf(out, "Next: chapter %s\n", report.NextKey)
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		return nil
	}),
}

func progressBar(percent float64) string {
	const width = 20
	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
