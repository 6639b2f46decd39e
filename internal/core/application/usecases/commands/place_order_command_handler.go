package commands

import (
	"context"
	"time"

	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/metrics"
)

// PlaceOrderCommandHandler creates an order from the cart snapshot, stores
// it with its line items and clears the cart in one transaction.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	grace      time.Duration
}

// NewPlaceOrderCommandHandler uses grace as the cancellation window of new orders.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock, grace time.Duration) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		grace:      grace,
	}
}

// Handle fails with order.ErrEmptyCart or order.ErrMultiCafeCart.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) (*order.Order, error) {
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

	cart := uow.CartRepository()

	cartLines, err := cart.CurrentLines(ctx, command.CustomerID())
	if err != nil {
		return nil, err
	}

	lines := make([]*order.LineItem, 0, len(cartLines))
	for _, cl := range cartLines {
		li, err := order.NewLineItem(cl.ItemID, cl.CafeID, cl.Quantity, cl.AssigneeID, cl.UnitPrice, cl.Calories)
		if err != nil {
			return nil, err
		}
		lines = append(lines, li)
	}

	o, err := order.NewOrder(command.OrderID(), command.CustomerID(), command.CafeID(), lines, h.clock.Now(), h.grace)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	if err = cart.Clear(ctx, command.CustomerID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	return o, nil
}
