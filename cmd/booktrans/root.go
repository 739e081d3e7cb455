package main

import (
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/internal/service"
	"github.com/lightsongjs/book-translator/pkg/log"
)

var (
	projectDir string
	logLevel   string
	logFile    string

	fileLogger *log.FileLogger
)

var errHandler = service.NewDefaultErrorHandler()

var rootCmd = &cobra.Command{
	Use:   "booktrans",
	Short: "Manual book translation workflow over an EPUB",
	Long: `Booktrans manages the manual translation of a book, from EPUB to a
reassembled translated document.

The workflow:
  - extract chapters from the EPUB and classify them
  - split each chapter into translation-sized segments
  - translate segment files by hand, in any editor
  - validate completeness and reassemble the translated book

Content is never silently dropped: every word of the source is either
in a segment awaiting translation or accounted for by a warning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&projectDir, "project-dir", "p", ".", "project directory",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warning or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFile, "log-file", "", "append logs to this file instead of stdout",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if logFile != "" {
			fl, err := log.InitFileLogger(logFile, log.ParseLevel(logLevel))
			if err != nil {
				return err
			}
			fileLogger = fl
			return nil
		}
		if logLevel != "" {
			log.InitLogger(log.ParseLevel(logLevel))
		}
		return nil
	}

	rootCmd.AddCommand(
		initCmd,
		extractCmd,
		segmentCmd,
		validateCmd,
		combineCmd,
		progressCmd,
		checkCmd,
		statsCmd,
		backupCmd,
		watchCmd,
	)
}

func newService() (*service.Service, error) {
	cfg, err := config.New(projectDir)
	if err != nil {
		return nil, err
	}
	if logLevel == "" && logFile == "" && cfg.LogLevel != "" {
		log.InitLogger(log.ParseLevel(cfg.LogLevel))
	}
	return service.New(cfg, projectDir), nil
}

// runE wraps a command body with service construction and error advice.
func runE(body func(cmd *cobra.Command, args []string, svc *service.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			errHandler.Handle(err)
			return err
		}
		if err := body(cmd, args, svc); err != nil {
			errHandler.Handle(err)
			return err
		}
		return nil
	}
}
