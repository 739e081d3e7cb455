package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats [chapter]",
	Short: "Export per-segment statistics as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			key, err := service.ResolveKey(args[0])
			if err != nil {
				return err
			}
			path, err := svc.StatsChapter(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, path)

			// boundary words per segment, to spot truncated translations
			previews, err := svc.QuickCheck(key)
			if err != nil {
				return err
			}
			for _, p := range previews {
				fmt.Fprintf(out, "  %s\n    src ends: ...%s\n    tgt ends: ...%s\n",
					p.SegmentName, p.SourceClosing, p.TargetClosing)
			}
			return nil
		}

		paths, err := svc.StatsAll()
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintln(out, path)
		}
		return nil
	}),
}
