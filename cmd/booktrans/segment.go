package main

import (
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [chapter]",
	Short: "Split chapters into translation-sized segments",
	Long: `Segment splits one chapter, or every chapter when no argument is given,
into bounded segments and creates placeholder files for the translated
side. Translated segments holding real content are never deleted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		if len(args) == 0 {
			return svc.SegmentAll()
		}
		key, err := service.ResolveKey(args[0])
		if err != nil {
			return err
		}
		return svc.SegmentChapter(key)
	}),
}
