// Package cron provides cron-based scheduling for recurring server tasks.
//
// The Trigger type wraps a Runnable and executes it according to a cron
// schedule. It is started once and runs until the context is cancelled.
package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidCronSpec is returned when the cron specification cannot be parsed.
var ErrInvalidCronSpec = errors.New("invalid cron spec")

// Runnable is implemented by anything that can be triggered by the scheduler.
type Runnable interface {
	Run() error
}

// Trigger executes a Runnable according to a cron schedule.
type Trigger struct {
	spec     string
	schedule cron.Schedule
	runnable Runnable
	logger   *slog.Logger
}

// NewTrigger creates a Trigger for the given cron specification.
// The spec follows standard cron format (5 fields: minute, hour, day, month, weekday).
// Returns ErrInvalidCronSpec if the specification cannot be parsed.
func NewTrigger(spec string, runnable Runnable, logger *slog.Logger) (*Trigger, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, errors.Join(ErrInvalidCronSpec, err)
	}

	return &Trigger{
		spec:     spec,
		schedule: schedule,
		runnable: runnable,
		logger:   logger,
	}, nil
}

// Start launches a goroutine that fires according to the cron schedule.
// Returns immediately. The goroutine exits when ctx is cancelled.
func (t *Trigger) Start(ctx context.Context) {
	go t.loop(ctx)
}

// NextRun returns the next scheduled run time from now.
func (t *Trigger) NextRun() time.Time {
	return t.schedule.Next(time.Now())
}

func (t *Trigger) loop(ctx context.Context) {
	for {
		nextRun := t.schedule.Next(time.Now())
		waitDuration := time.Until(nextRun)

		t.logger.Debug("waiting for next scheduled run",
			"spec", t.spec,
			"next_run", nextRun,
			"wait_duration", waitDuration,
		)

		select {
		case <-ctx.Done():
			t.logger.Info("cron trigger shutting down", "spec", t.spec)
			return
		case <-time.After(waitDuration):
			t.execute()
		}
	}
}

func (t *Trigger) execute() {
	if err := t.runnable.Run(); err != nil {
		t.logger.Warn("scheduled task completed with error", "error", err)
	} else {
		t.logger.Debug("scheduled task completed")
	}
}
