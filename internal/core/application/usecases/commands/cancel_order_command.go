package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer cancelling one of their own orders.
type CancelOrderCommand struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, requesterID kernel.UUID) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), requesterID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID:     orderID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}
