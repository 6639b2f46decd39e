// Package outboxrepo stores domain events until the relay publishes them.
package outboxrepo

import (
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is an outbox_messages row. Seq keeps the write order of events
// created within the same instant.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	Topic       string     `gorm:"not null"`
	Key         string     `gorm:"not null"`
	EventName   string     `gorm:"not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   *string
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		Topic:       m.Topic,
		Key:         m.Key,
		EventName:   m.EventName,
		Payload:     m.Payload,
		CreatedAt:   m.CreatedAt.UTC(),
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		PublishedAt: m.PublishedAt,
	}
}

func toDomain(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		Topic:       dto.Topic,
		Key:         dto.Key,
		EventName:   dto.EventName,
		Payload:     dto.Payload,
		CreatedAt:   dto.CreatedAt.UTC(),
		Attempts:    dto.Attempts,
		LastError:   dto.LastError,
		PublishedAt: dto.PublishedAt,
	}, nil
}
