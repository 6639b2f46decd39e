package order

import (
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
)

// DomainEvent is raised by the Order aggregate and stored in the outbox in
// the same transaction as the change that produced it.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type OrderPlaced struct {
	OrderID    kernel.UUID `json:"order_id"`
	CustomerID kernel.UUID `json:"customer_id"`
	CafeID     kernel.UUID `json:"cafe_id"`
	TotalPrice float64     `json:"total_price"`
	At         time.Time   `json:"at"`
}

func (e OrderPlaced) EventName() string        { return "order.placed" }
func (e OrderPlaced) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderPlaced) OccurredAt() time.Time    { return e.At }

type StatusChanged struct {
	OrderID kernel.UUID `json:"order_id"`
	CafeID  kernel.UUID `json:"cafe_id"`
	From    Status      `json:"from"`
	To      Status      `json:"to"`
	At      time.Time   `json:"at"`
}

func (e StatusChanged) EventName() string        { return "order.status_changed" }
func (e StatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChanged) OccurredAt() time.Time    { return e.At }

type DriverAssigned struct {
	OrderID  kernel.UUID `json:"order_id"`
	DriverID kernel.UUID `json:"driver_id"`
	At       time.Time   `json:"at"`
}

func (e DriverAssigned) EventName() string        { return "order.driver_assigned" }
func (e DriverAssigned) AggregateID() kernel.UUID { return e.OrderID }
func (e DriverAssigned) OccurredAt() time.Time    { return e.At }
