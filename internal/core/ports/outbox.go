package ports

import (
	"context"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published to the broker.
type OutboxMessage struct {
	ID          kernel.UUID
	Topic       string
	Key         string
	EventName   string
	Payload     []byte
	CreatedAt   time.Time
	Attempts    int
	LastError   *string
	PublishedAt *time.Time
}

type OutboxRepository interface {
	Add(ctx context.Context, msgs ...OutboxMessage) error

	// FetchPending locks up to limit unpublished messages, oldest first,
	// skipping rows already locked by another relay.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id kernel.UUID, cause string) error
}

// EventProducer publishes a message to the broker.
type EventProducer interface {
	Produce(ctx context.Context, topic, key string, payload []byte) error
}
