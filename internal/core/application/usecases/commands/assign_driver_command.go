package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand or NewAutoAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a driver to an ACCEPTED or READY order. With
// a driver id it is a manual assignment; without one the nearest idle driver
// to the cafe is chosen.
type AssignDriverCommand struct {
	orderID  kernel.UUID
	actor    actor.Actor
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand builds a manual assignment when driverID is non-nil
// and an automatic one otherwise.
func NewAssignDriverCommand(orderID kernel.UUID, by actor.Actor, driverID *kernel.UUID) (AssignDriverCommand, error) {
	checks := []error{orderID.Validate(), by.Validate()}
	if driverID != nil {
		checks = append(checks, driverID.Validate())
	}
	if err := errors.Join(checks...); err != nil {
		return AssignDriverCommand{}, err
	}

	c := AssignDriverCommand{
		orderID: orderID,
		actor:   by,
		guard:   guard.NewConstructorGuard(),
	}
	if driverID != nil {
		id := *driverID
		c.driverID = &id
	}
	return c, nil
}

func NewAutoAssignDriverCommand(orderID kernel.UUID, by actor.Actor) (AssignDriverCommand, error) {
	return NewAssignDriverCommand(orderID, by, nil)
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDriverCommand) Actor() actor.Actor {
	return c.actor
}

// DriverID is nil for automatic assignment.
func (c AssignDriverCommand) DriverID() *kernel.UUID {
	return c.driverID
}

func (c AssignDriverCommand) IsAuto() bool {
	return c.driverID == nil
}

func (c AssignDriverCommand) mode() string {
	if c.IsAuto() {
		return "auto"
	}
	return "manual"
}
