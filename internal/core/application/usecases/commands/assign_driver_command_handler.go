package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/metrics"
)

// DriverAssigner is the assignment use case as seen by the handlers that
// trigger it as a side effect.
type DriverAssigner interface {
	Handle(ctx context.Context, command AssignDriverCommand) (*order.Order, error)
}

// AssignDriverCommandHandler writes the order's driver and the driver's
// OCCUPIED record in one transaction. The order row is locked and the
// driver's ledger is locked before its latest record is read, so two
// assignments can never both observe the same driver as IDLE.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	cafes      ports.CafeRepository
	clock      ports.Clock
	dispatcher services.DriverDispatcher
}

func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	cafes ports.CafeRepository,
	clock ports.Clock,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		cafes:      cafes,
		clock:      clock,
		dispatcher: services.NewDriverDispatcher(),
	}
}

// Handle checks, in order: the order exists, the actor may manage the cafe,
// the order has no driver, the order is ACCEPTED or READY. Manual mode then
// fails with driver.ErrDriverUnavailable and auto mode with
// services.ErrNoIdleDriver.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.assign(ctx, command)
	metrics.DriverAssignmentsTotal.WithLabelValues(command.mode(), assignmentResult(err)).Inc()
	return o, err
}

func (h AssignDriverCommandHandler) assign(ctx context.Context, command AssignDriverCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	ledger := uow.DriverLocationRepository()

	o, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.authorizer.RequireCafeStaffOrOwnerOrAdmin(ctx, o.CafeID(), command.Actor()); err != nil {
		return nil, err
	}
	if o.HasDriver() {
		return nil, fmt.Errorf("%w: %s", order.ErrDriverAlreadyAssigned, o.DriverID())
	}
	if !o.Status().IsAssignable() {
		return nil, fmt.Errorf("%w: status is %s", order.ErrNotAssignable, o.Status())
	}

	now := h.clock.Now()

	var occupied *driver.LocationRecord
	if command.IsAuto() {
		occupied, err = h.occupyNearest(ctx, ledger, o.CafeID(), now)
	} else {
		occupied, err = occupy(ctx, ledger, *command.DriverID(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = o.AssignDriver(occupied.DriverID(), now); err != nil {
		return nil, err
	}
	if err = ledger.Add(ctx, occupied); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// occupy locks driverID and returns the OCCUPIED record to append, or
// driver.ErrDriverUnavailable if the driver has no record or is not idle.
func occupy(ctx context.Context, ledger ports.DriverLocationRepository, driverID kernel.UUID, now time.Time) (*driver.LocationRecord, error) {
	if err := ledger.LockDriver(ctx, driverID); err != nil {
		return nil, err
	}

	latest, err := ledger.Latest(ctx, driverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: driver %s has no location", driver.ErrDriverUnavailable, driverID)
	}
	if err != nil {
		return nil, err
	}
	if err = latest.EnsureIdle(); err != nil {
		return nil, err
	}

	return latest.WithStatus(driver.Occupied, now)
}

// occupyNearest tries idle drivers closest to the cafe first. A candidate
// that became occupied after the scan is skipped.
func (h AssignDriverCommandHandler) occupyNearest(
	ctx context.Context,
	ledger ports.DriverLocationRepository,
	cafeID kernel.UUID,
	now time.Time,
) (*driver.LocationRecord, error) {
	cafeLocation, err := h.cafes.Location(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	ranked, err := h.dispatcher.Rank(cafeLocation, ledger.AllIdle(ctx))
	if err != nil {
		return nil, err
	}

	for _, c := range ranked {
		rec, err := occupy(ctx, ledger, c.Record.DriverID(), now)
		if errors.Is(err, driver.ErrDriverUnavailable) {
			continue
		}
		return rec, err
	}
	return nil, services.ErrNoIdleDriver
}

func assignmentResult(err error) string {
	switch {
	case err == nil:
		return "assigned"
	case errors.Is(err, services.ErrNoIdleDriver):
		return "no_idle_driver"
	case errors.Is(err, driver.ErrDriverUnavailable):
		return "driver_unavailable"
	case errors.Is(err, order.ErrDriverAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, order.ErrNotAssignable):
		return "not_assignable"
	case errors.Is(err, errs.ErrForbidden):
		return "forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	default:
		return "error"
	}
}
