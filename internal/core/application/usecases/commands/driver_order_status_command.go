package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/guard"
)

var ErrDriverOrderStatusCommandIsNotConstructed = errors.New(
	"DriverOrderStatusCommand must be created via NewDriverOrderStatusCommand, NewPickupOrderCommand or NewDeliverOrderCommand",
)

// DriverOrderStatusCommand is a driver reporting progress on an order
// assigned to them. Only PICKED_UP and DELIVERED can be requested.
type DriverOrderStatusCommand struct {
	orderID  kernel.UUID
	driverID kernel.UUID
	actor    actor.Actor
	status   order.Status

	guard guard.ConstructorGuard
}

func NewDriverOrderStatusCommand(
	orderID, driverID kernel.UUID,
	by actor.Actor,
	status order.Status,
) (DriverOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate(), by.Validate(), status.Validate()); err != nil {
		return DriverOrderStatusCommand{}, err
	}
	return DriverOrderStatusCommand{
		orderID:  orderID,
		driverID: driverID,
		actor:    by,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func NewPickupOrderCommand(orderID, driverID kernel.UUID, by actor.Actor) (DriverOrderStatusCommand, error) {
	return NewDriverOrderStatusCommand(orderID, driverID, by, order.PickedUp)
}

func NewDeliverOrderCommand(orderID, driverID kernel.UUID, by actor.Actor) (DriverOrderStatusCommand, error) {
	return NewDriverOrderStatusCommand(orderID, driverID, by, order.Delivered)
}

func (c DriverOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrDriverOrderStatusCommandIsNotConstructed)
}

func (c DriverOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DriverOrderStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c DriverOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c DriverOrderStatusCommand) Status() order.Status {
	return c.status
}
