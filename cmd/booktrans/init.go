package main

import (
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
)

var initCmd = &cobra.Command{
	Use:   "init <book.epub>",
	Short: "Create a project from an EPUB and prepare it for translation",
	Long: `Init creates the stage directories, copies the EPUB into the project,
extracts and classifies its chapters and splits them into segments.
After init the project is ready for translation work.`,
	Args: cobra.ExactArgs(1),
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		return svc.InitProject(args[0])
	}),
}
