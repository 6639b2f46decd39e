package outboxrepo

import (
	"context"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, msgs ...ports.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		if err := m.ID.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending must run inside a transaction for the row locks to hold.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"published_at": at.UTC(),
		"attempts":     gorm.Expr("attempts + 1"),
		"last_error":   nil,
	})
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, cause string) error {
	return r.update(ctx, id, map[string]any{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": cause,
	})
}

func (r *GormOutboxRepository) update(ctx context.Context, id kernel.UUID, values map[string]any) error {
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).Where("id = ?", id.Bytes()).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id)
	}
	return nil
}
