package commands

import (
	"errors"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrSetDriverStatusCommandIsNotConstructed = errors.New(
	"SetDriverStatusCommand must be created via NewSetDriverStatusCommand constructor",
)

// SetDriverStatusCommand changes a driver's availability while keeping its
// last known position.
type SetDriverStatusCommand struct {
	driverID kernel.UUID
	status   driver.Status
	actor    actor.Actor

	guard guard.ConstructorGuard
}

func NewSetDriverStatusCommand(driverID kernel.UUID, status driver.Status, by actor.Actor) (SetDriverStatusCommand, error) {
	if err := errors.Join(driverID.Validate(), status.Validate(), by.Validate()); err != nil {
		return SetDriverStatusCommand{}, err
	}
	return SetDriverStatusCommand{
		driverID: driverID,
		status:   status,
		actor:    by,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverStatusCommandIsNotConstructed)
}

func (c SetDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c SetDriverStatusCommand) Status() driver.Status {
	return c.status
}

func (c SetDriverStatusCommand) Actor() actor.Actor {
	return c.actor
}
