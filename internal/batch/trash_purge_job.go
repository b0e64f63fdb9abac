package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/trash"
)

type Purger interface {
	PurgeExpired(ctx context.Context, before time.Time) (map[trash.Kind]int64, error)
}

// TrashPurgeJob permanently removes rows that have sat in the trash longer than the retention window.
type TrashPurgeJob struct {
	purger    Purger
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewTrashPurgeJob(purger Purger, retentionDays int, logger *slog.Logger) *TrashPurgeJob {
	if purger == nil || logger == nil {
		panic("TrashPurgeJob dependencies cannot be nil")
	}
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &TrashPurgeJob{
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		logger:    logger.With("job", "TrashPurge"),
	}
}

func (j *TrashPurgeJob) Run(ctx context.Context) error {
	startTime := j.now()
	cutoff := startTime.Add(-j.retention)
	j.logger.InfoContext(ctx, "Starting trash purge job.", slog.Time("cutoff", cutoff))

	purged, err := j.purger.PurgeExpired(ctx, cutoff)

	var total int64
	for _, n := range purged {
		total += n
	}
	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int64("rows_purged", total),
	)
	for kind, n := range purged {
		summaryLog = summaryLog.With(slog.Int64(string(kind), n))
	}

	if err != nil {
		summaryLog.ErrorContext(ctx, "Trash purge job finished with errors.", slog.Any("error", err))
		return fmt.Errorf("trash purge failed: %w", err)
	}
	summaryLog.InfoContext(ctx, "Trash purge job finished successfully.")
	return nil
}
