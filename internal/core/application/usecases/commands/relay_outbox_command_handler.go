package commands

import (
	"context"

	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/metrics"
)

type RelayOutboxResult struct {
	Published int
	Failed    int
}

// RelayOutboxCommandHandler moves outbox messages to the broker. Messages
// stay locked while they are published so concurrent relays skip them; a
// failed message keeps its place and is retried on the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	producer   ports.EventProducer
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, producer ports.EventProducer, clock ports.Clock) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		producer:   producer,
		clock:      clock,
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (RelayOutboxResult, error) {
	var res RelayOutboxResult
	if err := command.Validate(); err != nil {
		return res, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return res, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	msgs, err := outbox.FetchPending(ctx, command.BatchSize())
	if err != nil {
		return res, err
	}

	for _, m := range msgs {
		if pubErr := h.producer.Produce(ctx, m.Topic, m.Key, m.Payload); pubErr != nil {
			if err = outbox.MarkFailed(ctx, m.ID, pubErr.Error()); err != nil {
				return res, err
			}
			res.Failed++
			metrics.OutboxMessagesTotal.WithLabelValues("failed").Inc()
			continue
		}

		if err = outbox.MarkPublished(ctx, m.ID, h.clock.Now()); err != nil {
			return res, err
		}
		res.Published++
		metrics.OutboxMessagesTotal.WithLabelValues("published").Inc()
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayOutboxResult{}, err
	}
	return res, nil
}
