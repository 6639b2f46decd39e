package commands

import (
	"context"
	"fmt"

	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/metrics"
)

// DriverOrderStatusCommandHandler handles pickup and delivery reports.
//
// Pickup is accepted from READY and also from ACCEPTED. Delivery is
// accepted from PICKED_UP and releases the driver to IDLE in the same
// transaction.
type DriverOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewDriverOrderStatusCommandHandler(uowFactory UoWFactory, clock ports.Clock) DriverOrderStatusCommandHandler {
	return DriverOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns errs.ErrForbidden unless the actor is that driver or an
// admin, errs.ErrObjectNotFound unless the order is assigned to the driver,
// order.ErrInvalidTransition for other target statuses and
// order.ErrInvalidState when the order is not in a suitable status.
func (h DriverOrderStatusCommandHandler) Handle(ctx context.Context, command DriverOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := requireSelfOrAdmin(command.Actor(), command.DriverID(), "update order as driver"); err != nil {
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
	if !o.IsAssignedTo(command.DriverID()) {
		return nil, errs.NewObjectNotFoundErrorWithCause("order", command.OrderID(),
			fmt.Errorf("not assigned to driver %s", command.DriverID()))
	}

	now := h.clock.Now()
	from := o.Status()
	switch command.Status() {
	case order.PickedUp:
		err = o.MarkPickedUp(now)
	case order.Delivered:
		if err = o.MarkDelivered(now); err == nil {
			err = releaseDriver(ctx, uow.DriverLocationRepository(), command.DriverID(), now)
		}
	default:
		err = fmt.Errorf("%w: drivers may only set %s or %s, not %s",
			order.ErrInvalidTransition, order.PickedUp, order.Delivered, command.Status())
	}
	if err != nil {
		return nil, err
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
