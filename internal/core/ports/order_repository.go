package ports

import (
	"context"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their line items.
type OrderRepository interface {
	// Add stores a newly placed order. Line items are written with it.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and driver changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListAwaitingDriver returns up to limit ACCEPTED or READY orders without a
	// driver, oldest first.
	ListAwaitingDriver(ctx context.Context, limit int) ([]*order.Order, error)
}
