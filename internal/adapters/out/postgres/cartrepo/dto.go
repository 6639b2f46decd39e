// Package cartrepo reads and clears customer carts at order placement.
package cartrepo

import (
	"github.com/google/uuid"
)

// CartItemDTO is a cart_items row. Prices come from the referenced menu item.
type CartItemDTO struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity   int        `gorm:"not null;default:1"`
	AssigneeID *uuid.UUID `gorm:"type:uuid"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}
