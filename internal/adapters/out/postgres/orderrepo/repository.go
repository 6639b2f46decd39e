package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Migrate creates the order tables and the partial unique index that lets a
// driver hold at most one active order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderDTO{}, &LineItemDTO{}); err != nil {
		return err
	}
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_driver ON orders (driver_id)
		WHERE driver_id IS NOT NULL AND status IN (%d, %d, %d)`,
		order.Accepted, order.Ready, order.PickedUp,
	)).Error
}

// Add stores the order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status and driver. Everything else is frozen at placement.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":    dto.Status,
		"driver_id": dto.DriverID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Preload("Lines", orderedLines).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListAwaitingDriver(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("driver_id IS NULL AND status IN ?", []int{int(order.Accepted), int(order.Ready)}).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
