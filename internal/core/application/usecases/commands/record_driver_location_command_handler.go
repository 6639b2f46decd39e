package commands

import (
	"context"
	"errors"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
)

// RecordDriverLocationCommandHandler appends driver position reports. It does
// not check that the driver exists.
type RecordDriverLocationCommandHandler struct {
	uowFactory DriverLedgerUoWFactory
	clock      ports.Clock
}

func NewRecordDriverLocationCommandHandler(uowFactory DriverLedgerUoWFactory, clock ports.Clock) RecordDriverLocationCommandHandler {
	return RecordDriverLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h RecordDriverLocationCommandHandler) Handle(ctx context.Context, command RecordDriverLocationCommand) (*driver.LocationRecord, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := requireSelfOrAdmin(command.Actor(), command.DriverID(), "record driver location"); err != nil {
		return nil, err
	}

	ts := command.Timestamp()
	if ts.IsZero() {
		ts = h.clock.Now()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledger := uow.DriverLocationRepository()

	// serialises with assignments reading this driver's latest record
	if err := ledger.LockDriver(ctx, command.DriverID()); err != nil {
		return nil, err
	}

	status, err := currentStatus(ctx, ledger, command)
	if err != nil {
		return nil, err
	}
	record, err := driver.NewLocationRecord(command.DriverID(), command.Location(), ts, status)
	if err != nil {
		return nil, err
	}
	if err = ledger.Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// currentStatus keeps an OCCUPIED driver occupied across plain position
// reports. The caller must hold the driver lock.
func currentStatus(ctx context.Context, ledger ports.DriverLocationRepository, command RecordDriverLocationCommand) (driver.Status, error) {
	if command.Status() != "" {
		return command.Status(), nil
	}
	latest, err := ledger.Latest(ctx, command.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return driver.Idle, nil
	}
	if err != nil {
		return "", err
	}
	return latest.Status(), nil
}
