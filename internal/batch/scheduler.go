package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/config"

	"github.com/robfig/cron/v3"
)

type Job interface {
	Run(ctx context.Context) error
}

// StartScheduler registers the trash purge job on its cron schedule and starts the scheduler.
func StartScheduler(cfg config.BatchConfig, job Job, logger *slog.Logger) (*cron.Cron, error) {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.TrashPurgeSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 3 * * *"
		logger.Warn("Trash purge schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "TrashPurge")
		jobLogger.Info("Cron triggered: Running trash purge job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Trash purge job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule trash purge job", "schedule", scheduleSpec, slog.Any("error", err))
		return nil, fmt.Errorf("invalid trash purge schedule %q: %w", scheduleSpec, err)
	}
	logger.Info("Scheduled trash purge job", "schedule", scheduleSpec, "job_id", jobID)

	c.Start()
	logger.Info("Cron scheduler started.")
	return c, nil
}

// StopScheduler waits for a running job to finish, up to timeout.
func StopScheduler(c *cron.Cron, timeout time.Duration, logger *slog.Logger) {
	if c == nil {
		return
	}
	logger.Info("Stopping cron scheduler...")
	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(timeout):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}
