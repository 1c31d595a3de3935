// Package scheduler registers the maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/AyushPal0/Mental-Wellness/internal/jobs"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/robfig/cron/v3"
)

const (
	dueSoonSpec      = "@hourly"
	inactivitySpec   = "0 0 * * *"
	cleanupSpec      = "30 3 * * *"
	sessionSweepSpec = "@every 10m"
)

// New builds a cron scheduler with every maintenance job registered. Runs
// are skipped while the previous run of the same job is still going. The
// caller starts and stops it.
func New(ctx context.Context, m *jobs.Maintenance) (*cron.Cron, error) {
	cronLogger := cron.PrintfLogger(logger.Log)
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	schedule := []struct {
		spec string
		run  func(context.Context) error
	}{
		{dueSoonSpec, m.RunDueSoonScan},
		{inactivitySpec, m.RunInactivityScan},
		{cleanupSpec, m.RunNotificationCleanup},
		{sessionSweepSpec, m.RunSessionSweep},
	}

	for _, job := range schedule {
		run := job.run
		// Errors are logged by Maintenance.
		if _, err := c.AddFunc(job.spec, func() { _ = run(ctx) }); err != nil {
			return nil, fmt.Errorf("failed to schedule %q: %w", job.spec, err)
		}
	}

	return c, nil
}
