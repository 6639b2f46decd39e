package jobs

import (
	"context"
	"errors"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/pkg/metrics"

	"go.uber.org/zap"
)

type DispatchHandler interface {
	Handle(ctx context.Context, command commands.DispatchPendingOrdersCommand) (commands.DispatchPendingOrdersResult, error)
}

// PendingDispatchJob retries auto-assignment for orders that were accepted
// while no driver was idle.
type PendingDispatchJob struct {
	*scheduledJob
	handler   DispatchHandler
	batchSize int
}

func NewPendingDispatchJob(handler DispatchHandler, schedule string, batchSize int, logger *zap.Logger) *PendingDispatchJob {
	j := &PendingDispatchJob{handler: handler, batchSize: batchSize}
	j.scheduledJob = newScheduledJob("pending_dispatch_job", schedule, logger, j.runOnce)
	return j
}

func (j *PendingDispatchJob) runOnce(ctx context.Context) {
	cmd, err := commands.NewDispatchPendingOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Invalid dispatch command", zap.Error(err))
		return
	}

	res, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrNoPendingOrders):
		return
	case errors.Is(err, services.ErrNoIdleDriver):
		j.logger.Debug("No idle driver for pending orders", zap.Int("assigned", res.Assigned))
		return
	case err != nil:
		metrics.OperationErrorsTotal.WithLabelValues("dispatch_pending_orders").Inc()
		j.logger.Error("Pending dispatch failed", zap.Error(err))
		return
	}

	if res.Assigned > 0 || res.Skipped > 0 {
		j.logger.Info("Pending orders dispatched", zap.Int("assigned", res.Assigned), zap.Int("skipped", res.Skipped))
	}
}
