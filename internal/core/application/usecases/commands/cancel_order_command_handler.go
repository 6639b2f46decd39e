package commands

import (
	"context"

	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/metrics"
)

type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle reports another customer's order as not found. The cancellation
// window is checked before the status. A driver already assigned to the
// order is released.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.CustomerID().IsEqual(command.RequesterID()) {
		return nil, errs.NewObjectNotFoundError("order", command.OrderID())
	}

	now := h.clock.Now()
	from := o.Status()
	if err = o.Cancel(now); err != nil {
		return nil, err
	}

	if driverID := o.DriverID(); driverID != nil {
		if err = releaseDriver(ctx, uow.DriverLocationRepository(), *driverID, now); err != nil {
			return nil, err
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(from.String(), o.Status().String()).Inc()
	return o, nil
}
