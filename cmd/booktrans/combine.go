package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var combineCmd = &cobra.Command{
	Use:   "combine [chapter]",
	Short: "Reassemble translated segments into chapters",
	Long: `Combine joins a chapter's translated segments back into one document.
Untranslated segments become visible placeholder markers. Without an
argument every chapter with translated content is combined and the
results are concatenated into the final book document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			key, err := service.ResolveKey(args[0])
			if err != nil {
				return err
			}
			result, err := svc.CombineChapter(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Combined chapter %s: %s (%s words)\n",
				key, result.OutputPath, humanize.Comma(int64(result.Words)))
			for _, name := range result.Missing {
				fmt.Fprintf(out, "  missing %s\n", name)
			}
			return nil
		}

		book, err := svc.CombineAll()
		if err != nil {
			return err
		}
		for _, result := range book.Chapters {
			fmt.Fprintf(out, "Combined chapter %s (%d segments, %d missing)\n",
				result.Key, result.Segments, len(result.Missing))
		}
		for _, key := range book.Skipped {
			fmt.Fprintf(out, "Skipped chapter %s: nothing translated\n", key)
		}
		fmt.Fprintf(out, "Final document: %s\n", book.OutputPath)
		return nil
	}),
}
