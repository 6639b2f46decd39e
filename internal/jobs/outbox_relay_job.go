package jobs

import (
	"context"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/pkg/metrics"

	"go.uber.org/zap"
)

type RelayHandler interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob publishes committed domain events.
type OutboxRelayJob struct {
	*scheduledJob
	handler   RelayHandler
	batchSize int
}

func NewOutboxRelayJob(handler RelayHandler, schedule string, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	j := &OutboxRelayJob{handler: handler, batchSize: batchSize}
	j.scheduledJob = newScheduledJob("outbox_relay_job", schedule, logger, j.runOnce)
	return j
}

func (j *OutboxRelayJob) runOnce(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Invalid relay command", zap.Error(err))
		return
	}

	res, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("relay_outbox").Inc()
		j.logger.Error("Outbox relay failed", zap.Error(err))
		return
	}
	if res.Failed > 0 {
		j.logger.Warn("Outbox messages left for retry", zap.Int("published", res.Published), zap.Int("failed", res.Failed))
		return
	}
	if res.Published > 0 {
		j.logger.Debug("Outbox messages published", zap.Int("published", res.Published))
	}
}
