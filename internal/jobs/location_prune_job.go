package jobs

import (
	"context"
	"time"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/pkg/metrics"

	"go.uber.org/zap"
)

type PruneHandler interface {
	Handle(ctx context.Context, command commands.PruneDriverLocationsCommand) (int64, error)
}

// LocationPruneJob enforces the driver location retention window.
type LocationPruneJob struct {
	*scheduledJob
	handler   PruneHandler
	retention time.Duration
}

func NewLocationPruneJob(handler PruneHandler, schedule string, retention time.Duration, logger *zap.Logger) *LocationPruneJob {
	j := &LocationPruneJob{handler: handler, retention: retention}
	j.scheduledJob = newScheduledJob("location_prune_job", schedule, logger, j.runOnce)
	return j
}

func (j *LocationPruneJob) runOnce(ctx context.Context) {
	cmd, err := commands.NewPruneDriverLocationsCommand(j.retention)
	if err != nil {
		j.logger.Error("Invalid prune command", zap.Error(err))
		return
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("prune_driver_locations").Inc()
		j.logger.Error("Driver location pruning failed", zap.Error(err))
		return
	}
	j.logger.Info("Driver locations pruned", zap.Int64("removed", n), zap.Duration("retention", j.retention))
}
