package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
	"github.com/lightsongjs/book-translator/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [chapter]",
	Short: "Check translated segments for completeness and integrity",
	Long: `Validate pairs every source segment with its translated counterpart and
reports missing translations, suspicious length ratios, incomplete
endings and encoding problems. Without an argument every segmented
chapter is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			key, err := service.ResolveKey(args[0])
			if err != nil {
				return err
			}
			report, err := svc.ValidateChapter(key)
			if err != nil {
				return err
			}
			printReport(out, key, report)
			if !report.Valid {
				return service.NewError(service.ErrValidation,
					fmt.Sprintf("chapter %s failed validation", key))
			}
			return nil
		}

		reports, err := svc.ValidateAll()
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(reports))
		for key := range reports {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA == nil && errB == nil {
				return a < b
			}
			if errA == nil {
				return true
			}
			if errB == nil {
				return false
			}
			return keys[i] < keys[j]
		})

		failed := 0
		for _, key := range keys {
			report := reports[key]
			printReport(out, key, report)
			if !report.Valid {
				failed++
			}
		}
		if failed > 0 {
			return service.NewError(service.ErrValidation,
				fmt.Sprintf("%d of %d chapters failed validation", failed, len(reports)))
		}
		return nil
	}),
}

func printReport(out io.Writer, key string, report *validator.Report) {
	status := "OK"
	if !report.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(out, "Chapter %s: %s (%d/%d segments translated, %.0f%%)\n",
		key, status,
		report.Stats.TranslatedSegments, report.Stats.TotalSegments,
		report.Stats.CompletionPercent)

	for _, e := range report.Errors {
		fmt.Fprintf(out, "  ERROR   %s\n", e)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning %s\n", w)
	}
}
