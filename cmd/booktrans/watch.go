package main

import (
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/lightsongjs/book-translator/internal/service"
	"github.com/lightsongjs/book-translator/pkg/log"
)

var watchCron string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically validate the project while translating",
	Long: `Watch runs a validation sweep on a cron schedule (watch.cron_expr) and
logs integrity problems and progress as segment files change. Stop it
with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runE(func(cmd *cobra.Command, args []string, svc *service.Service) error {
		if watchCron != "" {
			svc.SetWatchCron(watchCron)
		}
		c := cron.New()
		if err := svc.Schedule(cmd.Context(), c); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()

		<-cmd.Context().Done()
		log.Info("Watch stopped")
		return nil
	}),
}

func init() {
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron schedule for the sweep (overrides config)")
}
