package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ArtifactSweeper removes stored receipts older than a given age
type ArtifactSweeper interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// SessionSweeper drops sale sessions untouched since cutoff
type SessionSweeper interface {
	SweepIdle(cutoff time.Time) int
}

// ArtifactRetentionJob deletes receipts older than retention every interval
func ArtifactRetentionJob(store ArtifactSweeper, retention, interval time.Duration) Job {
	return Job{
		Name:     "artifact_retention",
		Interval: interval,
		Run: func(ctx context.Context) error {
			_, err := store.CleanupOlderThan(ctx, retention)
			return err
		},
	}
}

// SessionSweepJob drops sessions idle for longer than idle every interval
func SessionSweepJob(sessions SessionSweeper, idle, interval time.Duration, logger *zap.Logger) Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Job{
		Name:     "session_sweep",
		Interval: interval,
		Run: func(context.Context) error {
			if n := sessions.SweepIdle(time.Now().Add(-idle)); n > 0 {
				logger.Info("Dropped idle sale sessions", zap.Int("count", n), zap.Duration("idle", idle))
			}
			return nil
		},
	}
}
