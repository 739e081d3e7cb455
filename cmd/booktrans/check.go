package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var checkCmd = &cobra.Command{
	Use:   "check <chapter>",
	Short: "Preview segment openings against their translations",
	Long: `Check prints the first words of every segment next to the first words
of its translation, enough to spot a misaligned or stale file without
opening whole segments.`,
	Args: cobra.ExactArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		key, err := service.ResolveKey(args[0])
		if err != nil {
			return err
		}
		previews, err := svc.QuickCheck(key)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range previews {
			marker := " "
			if !p.Translated {
				marker = "!"
			}
			fmt.Fprintf(out, "%s %s\n    src: %s\n    tgt: %s\n",
				marker, p.SegmentName, p.SourceOpening, p.TargetOpening)
		}
		return nil
	}),
}
