package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand is cafe staff moving an order along the status
// table, for example PENDING to ACCEPTED.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	actor   actor.Actor
	status  order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand expects a status already parsed with order.ParseStatus.
func NewChangeOrderStatusCommand(orderID kernel.UUID, by actor.Actor, status order.Status) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), by.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{
		orderID: orderID,
		actor:   by,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}
