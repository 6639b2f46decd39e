package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
)

// setDriverStatus appends a record carrying the driver's last position
// forward with a new status. The driver is locked for the rest of the
// transaction. It returns errs.ErrObjectNotFound if the driver has never
// posted a location.
func setDriverStatus(
	ctx context.Context,
	ledger ports.DriverLocationRepository,
	driverID kernel.UUID,
	status driver.Status,
	now time.Time,
) (*driver.LocationRecord, error) {
	if err := ledger.LockDriver(ctx, driverID); err != nil {
		return nil, err
	}

	latest, err := ledger.Latest(ctx, driverID)
	if err != nil {
		return nil, err
	}

	next, err := latest.WithStatus(status, now)
	if err != nil {
		return nil, err
	}

	if err = ledger.Add(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// releaseDriver sets the driver back to IDLE. A driver without any record
// has nothing to release.
func releaseDriver(ctx context.Context, ledger ports.DriverLocationRepository, driverID kernel.UUID, now time.Time) error {
	_, err := setDriverStatus(ctx, ledger, driverID, driver.Idle, now)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

// requireSelfOrAdmin allows a driver acting for itself and admins.
func requireSelfOrAdmin(a actor.Actor, driverID kernel.UUID, action string) error {
	if a.IsAdmin() {
		return nil
	}
	if a.Role() == actor.Driver && a.ID().IsEqual(driverID) {
		return nil
	}
	return errs.NewForbiddenErrorWithCause(action, fmt.Errorf("%s may not act for driver %s", a, driverID))
}
