package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// FeedPruner drops feed entries older than the retention window.
type FeedPruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

// PruneJob enforces notification retention.
type PruneJob struct {
	Pruner FeedPruner
	Logger *slog.Logger
}

// NewPruneJob initialises the retention handler.
func NewPruneJob(pruner FeedPruner, logger *slog.Logger) *PruneJob {
	return &PruneJob{Pruner: pruner, Logger: logger}
}

// Handle executes the retention pass.
func (j *PruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("prune: handler not configured")
	}
	var payload PrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.MaxAgeHours <= 0 {
		payload.MaxAgeHours = 2160
	}

	dropped, err := j.Pruner.Prune(ctx, time.Duration(payload.MaxAgeHours)*time.Hour)
	if err != nil {
		j.Logger.Error("notification prune failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("notification prune done", slog.Int64("dropped", dropped))
	return nil
}
