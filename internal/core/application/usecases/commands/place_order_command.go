package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand turns the customer's current cart into an order from cafeID.
type PlaceOrderCommand struct {
	orderID    kernel.UUID
	customerID kernel.UUID
	cafeID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(orderID, customerID, cafeID kernel.UUID) (PlaceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate(), cafeID.Validate()); err != nil {
		return PlaceOrderCommand{}, err
	}
	return PlaceOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		cafeID:     cafeID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) CafeID() kernel.UUID {
	return c.cafeID
}
