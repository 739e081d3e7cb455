package main

import (
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Re-extract chapters from the project EPUB",
	Long: `Extract re-reads the project EPUB, classifies its content and rewrites
the chapter files and the tracking log. Segment files are not touched;
run segment afterwards to refresh them.`,
	Args: cobra.NoArgs,
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		return svc.Extract()
	}),
}
