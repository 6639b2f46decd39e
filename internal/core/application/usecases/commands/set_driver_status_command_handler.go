package commands

import (
	"context"
	"errors"
	"fmt"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
)

type SetDriverStatusCommandHandler struct {
	uowFactory DriverLedgerUoWFactory
	clock      ports.Clock
}

func NewSetDriverStatusCommandHandler(uowFactory DriverLedgerUoWFactory, clock ports.Clock) SetDriverStatusCommandHandler {
	return SetDriverStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle fails with errs.ErrObjectNotFound when the driver has not posted a
// location yet, since a status record needs a position to carry.
func (h SetDriverStatusCommandHandler) Handle(ctx context.Context, command SetDriverStatusCommand) (*driver.LocationRecord, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := requireSelfOrAdmin(command.Actor(), command.DriverID(), "set driver status"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := setDriverStatus(ctx, uow.DriverLocationRepository(), command.DriverID(), command.Status(), h.clock.Now())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("driver location", command.DriverID(),
			fmt.Errorf("post a location before changing status: %w", err))
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}
