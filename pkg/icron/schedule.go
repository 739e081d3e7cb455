package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger describes when a cron expression fires next relative to a
// reference time.
type Trigger struct {
	Expression    string
	Next          time.Time
	TimeUntilNext time.Duration
}

// NextTrigger parses a standard 5-field cron expression (descriptors like
// @hourly allowed) and reports its next firing time after refTime.
func NextTrigger(cronExpr string, refTime time.Time) (*Trigger, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom |
		cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	next := schedule.Next(refTime)
	return &Trigger{
		Expression:    cronExpr,
		Next:          next,
		TimeUntilNext: next.Sub(refTime),
	}, nil
}
