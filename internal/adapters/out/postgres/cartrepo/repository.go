package cartrepo

import (
	"context"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// CurrentLines joins the cart with menu prices in insertion order.
func (r *GormCartRepository) CurrentLines(ctx context.Context, customerID kernel.UUID) ([]ports.CartLine, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT i.id, i.cafe_id, i.price, i.calories, c.quantity, c.assignee_id
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.customer_id = ?
		ORDER BY c.id`, customerID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]ports.CartLine, 0)
	for rows.Next() {
		var (
			itemID, cafeID uuid.UUID
			assignee       *uuid.UUID
			line           ports.CartLine
		)
		if err = rows.Scan(&itemID, &cafeID, &line.UnitPrice, &line.Calories, &line.Quantity, &assignee); err != nil {
			return nil, err
		}

		if line.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		if line.CafeID, err = kernel.UUIDFromBytes(cafeID[:]); err != nil {
			return nil, err
		}
		if assignee != nil {
			id, idErr := kernel.UUIDFromBytes(assignee[:])
			if idErr != nil {
				return nil, idErr
			}
			line.AssigneeID = &id
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("customer_id = ?", customerID.Bytes()).Delete(&CartItemDTO{}).Error
}
