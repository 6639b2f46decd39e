package queries

import (
	"errors"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery loads one order with its line items.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}
	return GetOrderSummaryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

type OrderLineResponse struct {
	ItemID           kernel.UUID
	Quantity         int
	AssigneeID       *kernel.UUID
	UnitPrice        float64
	UnitCalories     int
	SubtotalPrice    float64
	SubtotalCalories int
}

type GetOrderSummaryQueryResponse struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	CafeID         kernel.UUID
	DriverID       *kernel.UUID
	Status         order.Status
	CreatedAt      time.Time
	CancelDeadline time.Time
	PickupCode     string
	TotalPrice     float64
	TotalCalories  int
	Lines          []OrderLineResponse
}
