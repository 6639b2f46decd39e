package commands

import (
	"context"

	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ChangeOrderStatusCommandHandler applies a staff status change.
//
// Reaching DELIVERED or CANCELLED releases the order's driver in the same
// transaction. Reaching ACCEPTED or READY without a driver triggers an
// automatic assignment after the change is committed; its failure is logged
// and does not fail the status change.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	clock      ports.Clock
	assigner   DriverAssigner
	logger     *zap.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	clock ports.Clock,
	assigner DriverAssigner,
	logger *zap.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		clock:      clock,
		assigner:   assigner,
		logger:     logger.With(zap.String("component", "ChangeOrderStatusCommandHandler")),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.transition(ctx, command)
	if err != nil {
		return nil, err
	}

	if o.NeedsDriver() {
		o = h.tryAutoAssign(ctx, command, o)
	}
	return o, nil
}

func (h ChangeOrderStatusCommandHandler) transition(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
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
	if err = h.authorizer.RequireCafeStaffOrOwnerOrAdmin(ctx, o.CafeID(), command.Actor()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from := o.Status()
	if err = o.ChangeStatus(command.Status(), now); err != nil {
		return nil, err
	}

	if to := o.Status(); to == order.Delivered || to == order.Cancelled {
		if driverID := o.DriverID(); driverID != nil {
			if err = releaseDriver(ctx, uow.DriverLocationRepository(), *driverID, now); err != nil {
				return nil, err
			}
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

// tryAutoAssign never fails, not even on a panic inside the assigner. It
// returns the assigned order on success and the committed order otherwise.
func (h ChangeOrderStatusCommandHandler) tryAutoAssign(
	ctx context.Context,
	command ChangeOrderStatusCommand,
	committed *order.Order,
) (result *order.Order) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("auto-assignment panicked", zap.Stringer("order_id", committed.ID()), zap.Any("panic", r))
			result = committed
		}
	}()

	assignCmd, err := NewAutoAssignDriverCommand(committed.ID(), command.Actor())
	if err != nil {
		h.logger.Warn("auto-assignment skipped", zap.Stringer("order_id", committed.ID()), zap.Error(err))
		return committed
	}

	assigned, err := h.assigner.Handle(ctx, assignCmd)
	if err != nil {
		h.logger.Info("auto-assignment failed, order stays without driver",
			zap.Stringer("order_id", committed.ID()),
			zap.Stringer("status", committed.Status()),
			zap.Error(err))
		return committed
	}

	h.logger.Info("driver auto-assigned",
		zap.Stringer("order_id", assigned.ID()),
		zap.Stringer("driver_id", assigned.DriverID()))
	return assigned
}
