package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/lightsongjs/book-translator/pkg/icron"
	"github.com/lightsongjs/book-translator/pkg/log"
)

var singleflightGroup singleflight.Group

// SetWatchCron overrides the configured sweep schedule, typically from
// a CLI flag.
func (s *Service) SetWatchCron(expr string) {
	s.cfg.Watch.CronExpr = expr
}

// Schedule registers a periodic validation sweep on the given cron. The
// sweep re-validates every segmented chapter and logs what changed, so
// a translator editing segment files gets integrity feedback without
// running validate by hand. Overlapping runs collapse into one.
func (s *Service) Schedule(ctx context.Context, c *cron.Cron) error {
	expr := s.cfg.Watch.CronExpr

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("watch", func() (any, error) {
			if err := ctx.Err(); err != nil {
				return nil, nil
			}
			s.watchOnce()
			return nil, nil
		})
	}
	if _, err := c.AddFunc(expr, runFunc); err != nil {
		return WrapError(err, ErrConfig, "invalid watch cron expression")
	}

	if trigger, err := icron.NextTrigger(expr, time.Now()); err == nil {
		log.Info("Watching project, next sweep at %s (in %s)",
			trigger.Next.Format(time.RFC3339), trigger.TimeUntilNext.Round(time.Second))
	}
	return nil
}

func (s *Service) watchOnce() {
	reports, err := s.ValidateAll()
	if err != nil {
		log.Error("Validation sweep failed: %v", err)
		return
	}

	invalid := 0
	warned := 0
	for key, report := range reports {
		if !report.Valid {
			invalid++
			for _, e := range report.Errors {
				log.Error("Chapter %s: %s", key, e)
			}
		}
		if len(report.Warnings) > 0 {
			warned++
			for _, w := range report.Warnings {
				log.Debug("Chapter %s: %s", key, w)
			}
		}
	}

	progress, err := s.Progress()
	if err != nil {
		log.Error("Progress scan failed: %v", err)
		return
	}
	log.Info("Sweep: %d chapters checked, %d invalid, %d with warnings; %d combined, %d translated, %d in progress",
		len(reports), invalid, warned, progress.Combined, progress.Done, progress.InProgress)
}
