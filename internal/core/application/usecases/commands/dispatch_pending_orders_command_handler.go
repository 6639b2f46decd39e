package commands

import (
	"context"
	"errors"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/pkg/errs"
)

// ErrNoPendingOrders is returned when no order is waiting for a driver.
var ErrNoPendingOrders = errors.New("no orders awaiting a driver")

type DispatchPendingOrdersResult struct {
	Assigned int
	Skipped  int
}

// DispatchPendingOrdersCommandHandler is the background counterpart of the
// best-effort assignment done on status changes. It acts as the system actor.
type DispatchPendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	assigner   DriverAssigner
}

func NewDispatchPendingOrdersCommandHandler(uowFactory UoWFactory, assigner DriverAssigner) DispatchPendingOrdersCommandHandler {
	return DispatchPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle stops early with services.ErrNoIdleDriver once no driver is left.
// Orders that changed concurrently are counted as skipped.
func (h DispatchPendingOrdersCommandHandler) Handle(
	ctx context.Context,
	command DispatchPendingOrdersCommand,
) (DispatchPendingOrdersResult, error) {
	var res DispatchPendingOrdersResult
	if err := command.Validate(); err != nil {
		return res, err
	}

	// read-only listing, no transaction
	pending, err := h.uowFactory.Create().OrderRepository().ListAwaitingDriver(ctx, command.BatchSize())
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		return res, ErrNoPendingOrders
	}

	for _, o := range pending {
		if err = ctx.Err(); err != nil {
			return res, err
		}

		assignCmd, err := NewAutoAssignDriverCommand(o.ID(), actor.System())
		if err != nil {
			return res, err
		}

		_, err = h.assigner.Handle(ctx, assignCmd)
		switch {
		case err == nil:
			res.Assigned++
		case errors.Is(err, services.ErrNoIdleDriver):
			return res, err
		case isSkippable(err):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}

func isSkippable(err error) bool {
	return errors.Is(err, order.ErrDriverAlreadyAssigned) ||
		errors.Is(err, order.ErrNotAssignable) ||
		errors.Is(err, driver.ErrDriverUnavailable) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
