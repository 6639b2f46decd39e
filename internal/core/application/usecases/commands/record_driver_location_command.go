package commands

import (
	"errors"
	"time"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrRecordDriverLocationCommandIsNotConstructed = errors.New(
	"RecordDriverLocationCommand must be created via NewRecordDriverLocationCommand constructor",
)

// RecordDriverLocationCommand appends a position report to the driver
// location ledger. A zero timestamp means "now". An empty status keeps the
// driver's current status, or IDLE for a driver with no record yet.
type RecordDriverLocationCommand struct {
	driverID  kernel.UUID
	location  kernel.Location
	timestamp time.Time
	status    driver.Status
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewRecordDriverLocationCommand(
	driverID kernel.UUID,
	location kernel.Location,
	timestamp time.Time,
	status driver.Status,
	by actor.Actor,
) (RecordDriverLocationCommand, error) {
	var statusErr error
	if status != "" {
		statusErr = status.Validate()
	}
	if err := errors.Join(driverID.Validate(), location.Validate(), statusErr, by.Validate()); err != nil {
		return RecordDriverLocationCommand{}, err
	}

	return RecordDriverLocationCommand{
		driverID:  driverID,
		location:  location,
		timestamp: timestamp,
		status:    status,
		actor:     by,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordDriverLocationCommandIsNotConstructed)
}

func (c RecordDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RecordDriverLocationCommand) Location() kernel.Location {
	return c.location
}

// Timestamp is zero when the report carries no time of its own.
func (c RecordDriverLocationCommand) Timestamp() time.Time {
	return c.timestamp
}

// Status is empty when the report leaves the driver's status unchanged.
func (c RecordDriverLocationCommand) Status() driver.Status {
	return c.status
}

func (c RecordDriverLocationCommand) Actor() actor.Actor {
	return c.actor
}
