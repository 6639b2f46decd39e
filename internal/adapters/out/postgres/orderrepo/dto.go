// Package orderrepo persists Order aggregates and their line items.
package orderrepo

import (
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Status is stored as its integer value.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CafeID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"not null;index"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	CancelDeadline time.Time  `gorm:"not null"`
	PickupCode     string     `gorm:"size:6;not null"`
	TotalPrice     float64    `gorm:"type:numeric(12,2);not null"`
	TotalCalories  int        `gorm:"not null"`

	Lines []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is an order_line_items row. Lines are written once with the order.
type LineItemDTO struct {
	ID               int64      `gorm:"primaryKey;autoIncrement"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID  `gorm:"type:uuid;not null"`
	CafeID           uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity         int        `gorm:"not null"`
	AssigneeID       *uuid.UUID `gorm:"type:uuid"`
	UnitPrice        float64    `gorm:"not null"`
	UnitCalories     int        `gorm:"not null"`
	SubtotalPrice    float64    `gorm:"type:numeric(12,2);not null"`
	SubtotalCalories int        `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             o.ID().Bytes(),
		CustomerID:     o.CustomerID().Bytes(),
		CafeID:         o.CafeID().Bytes(),
		DriverID:       optionalBytes(o.DriverID()),
		Status:         int(o.Status()),
		CreatedAt:      o.CreatedAt(),
		CancelDeadline: o.CancelDeadline(),
		PickupCode:     o.PickupCode(),
		TotalPrice:     o.TotalPrice(),
		TotalCalories:  o.TotalCalories(),
	}

	for _, li := range o.Lines() {
		dto.Lines = append(dto.Lines, LineItemDTO{
			OrderID:          dto.ID,
			ItemID:           li.ItemID().Bytes(),
			CafeID:           li.CafeID().Bytes(),
			Quantity:         li.Quantity(),
			AssigneeID:       optionalBytes(li.AssigneeID()),
			UnitPrice:        li.UnitPrice(),
			UnitCalories:     li.UnitCalories(),
			SubtotalPrice:    li.SubtotalPrice(),
			SubtotalCalories: li.SubtotalCalories(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	cafeID, err := kernel.UUIDFromBytes(dto.CafeID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.LineItem, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		li, err := lineToDomain(l)
		if err != nil {
			return nil, err
		}
		lines = append(lines, li)
	}

	return order.RestoreOrder(id, customerID, cafeID, driverID, order.Status(dto.Status),
		dto.CreatedAt, dto.CancelDeadline, dto.PickupCode, dto.TotalPrice, dto.TotalCalories, lines)
}

func lineToDomain(l LineItemDTO) (*order.LineItem, error) {
	itemID, err := kernel.UUIDFromBytes(l.ItemID[:])
	if err != nil {
		return nil, err
	}
	cafeID, err := kernel.UUIDFromBytes(l.CafeID[:])
	if err != nil {
		return nil, err
	}
	assigneeID, err := optionalUUID(l.AssigneeID)
	if err != nil {
		return nil, err
	}
	return order.NewLineItem(itemID, cafeID, l.Quantity, assigneeID, l.UnitPrice, l.UnitCalories)
}
