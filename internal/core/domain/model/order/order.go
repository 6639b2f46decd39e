package order

import (
	"errors"
	"fmt"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"
)

// DefaultCancellationGrace is how long after placement a customer may cancel.
const DefaultCancellationGrace = 15 * time.Minute

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of one customer purchase from one cafe.
//
// Invariants:
//   - every line item belongs to the order's cafe
//   - a driver is referenced only in ACCEPTED, READY, PICKED_UP, and afterwards
//     in DELIVERED or CANCELLED as history
//   - status changes only through ChangeStatus, Cancel, MarkPickedUp and MarkDelivered
//
// Every mutation raises a DomainEvent. The unit of work drains them into the
// outbox on commit, so callers never publish directly.
//
// Example usage:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, cafeID, lines, now, order.DefaultCancellationGrace)
//	if err != nil {
//	    return nil, err
//	}
//	if err = o.ChangeStatus(order.Accepted, now); err != nil {
//	    return nil, err // ErrInvalidTransition
//	}
//	if err = o.AssignDriver(driverID, now); err != nil {
//	    return nil, err
//	}
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	cafeID     kernel.UUID
	driverID   *kernel.UUID
	status     Status

	createdAt      time.Time
	cancelDeadline time.Time
	pickupCode     string

	totalPrice    float64
	totalCalories int
	lines         []*LineItem

	events        []DomainEvent
	isConstructed bool
}

// NewOrder places an order from a cart snapshot. It fails with ErrEmptyCart
// when lines is empty and with ErrMultiCafeCart when a line belongs to a
// different cafe. The order starts PENDING and may be cancelled until
// now+grace.
func NewOrder(
	id, customerID, cafeID kernel.UUID,
	lines []*LineItem,
	now time.Time,
	grace time.Duration,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), cafeID.Validate()); err != nil {
		return nil, err
	}
	if grace < 0 {
		return nil, errs.NewValueIsOutOfRangeError("grace", grace, time.Duration(0), "unbounded")
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, li := range lines {
		if li == nil {
			return nil, errs.NewValueIsRequiredError("line item")
		}
		if !li.CafeID().IsEqual(cafeID) {
			return nil, fmt.Errorf("%w: item %s belongs to cafe %s", ErrMultiCafeCart, li.ItemID(), li.CafeID())
		}
	}

	code, err := NewPickupCode()
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	o := &Order{
		id:             id,
		customerID:     customerID,
		cafeID:         cafeID,
		status:         Pending,
		createdAt:      now,
		cancelDeadline: now.Add(grace),
		pickupCode:     code,
		lines:          append([]*LineItem(nil), lines...),
		isConstructed:  true,
	}
	o.totalPrice, o.totalCalories = totals(lines)

	o.raise(OrderPlaced{
		OrderID:    id,
		CustomerID: customerID,
		CafeID:     cafeID,
		TotalPrice: o.totalPrice,
		At:         now,
	})
	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. Totals are taken as
// stored, not recomputed, since they are frozen at placement.
func RestoreOrder(
	id, customerID, cafeID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	createdAt, cancelDeadline time.Time,
	pickupCode string,
	totalPrice float64,
	totalCalories int,
	lines []*LineItem,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), cafeID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		if !status.CanHaveDriver() {
			return nil, fmt.Errorf("%w: %s order cannot reference a driver", ErrInvalidState, status)
		}
	}

	o := &Order{
		id:             id,
		customerID:     customerID,
		cafeID:         cafeID,
		status:         status,
		createdAt:      createdAt.UTC(),
		cancelDeadline: cancelDeadline.UTC(),
		pickupCode:     pickupCode,
		totalPrice:     totalPrice,
		totalCalories:  totalCalories,
		lines:          append([]*LineItem(nil), lines...),
		isConstructed:  true,
	}
	if driverID != nil {
		d := *driverID
		o.driverID = &d
	}
	return o, nil
}

func totals(lines []*LineItem) (float64, int) {
	var (
		price    float64
		calories int
	)
	for _, li := range lines {
		price += li.UnitPrice() * float64(li.Quantity())
		calories += li.SubtotalCalories()
	}
	return roundCents(price), calories
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) CafeID() kernel.UUID {
	return o.cafeID
}

// DriverID returns nil while no driver is assigned.
//
// Example:
//
//	if id := o.DriverID(); id != nil {
//	    err = releaseDriver(ctx, ledger, *id, now)
//	}
func (o *Order) DriverID() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	d := *o.driverID
	return &d
}

func (o *Order) HasDriver() bool {
	return o.driverID != nil
}

// IsAssignedTo reports whether driverID is the order's driver.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CancelDeadline() time.Time {
	return o.cancelDeadline
}

func (o *Order) PickupCode() string {
	return o.pickupCode
}

func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

func (o *Order) TotalCalories() int {
	return o.totalCalories
}

func (o *Order) Lines() []*LineItem {
	return append([]*LineItem(nil), o.lines...)
}

// NeedsDriver reports whether the order waits for automatic dispatch.
func (o *Order) NeedsDriver() bool {
	return o.driverID == nil && o.status.IsAssignable()
}

// ChangeStatus applies one step of the transition table:
//
//	PENDING   -> ACCEPTED | DECLINED
//	ACCEPTED  -> READY | CANCELLED
//	READY     -> PICKED_UP
//	PICKED_UP -> DELIVERED
//
// Any other step fails with ErrInvalidTransition and leaves the order as is.
//
// Example:
//
//	if err := o.ChangeStatus(order.Ready, clock.Now()); err != nil {
//	    return err
//	}
func (o *Order) ChangeStatus(to Status, now time.Time) error {
	next, err := o.status.Transition(to)
	if err != nil {
		return err
	}
	o.setStatus(next, now)
	return nil
}

// Cancel is the customer's cancellation. It is allowed from PENDING and
// ACCEPTED while now is not after the cancellation deadline. The deadline is
// checked first.
func (o *Order) Cancel(now time.Time) error {
	if now.After(o.cancelDeadline) {
		return fmt.Errorf("%w: deadline was %s", ErrCancellationWindowExpired, o.cancelDeadline.Format(time.RFC3339))
	}
	if o.status != Pending && o.status != Accepted {
		return fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidState, o.status)
	}
	o.setStatus(Cancelled, now)
	return nil
}

// AssignDriver records driverID as the order's driver. The order must not
// have a driver yet and must be ACCEPTED or READY.
func (o *Order) AssignDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil {
		return fmt.Errorf("%w: %s", ErrDriverAlreadyAssigned, o.driverID)
	}
	if !o.status.IsAssignable() {
		return fmt.Errorf("%w: status is %s", ErrNotAssignable, o.status)
	}

	o.driverID = &driverID
	o.raise(DriverAssigned{OrderID: o.id, DriverID: driverID, At: now.UTC()})
	return nil
}

// MarkPickedUp is the driver's pickup. Unlike the transition table it also
// accepts ACCEPTED, for cafes that hand over before marking an order ready.
func (o *Order) MarkPickedUp(now time.Time) error {
	if o.status != Ready && o.status != Accepted {
		return fmt.Errorf("%w: cannot pick up a %s order", ErrInvalidState, o.status)
	}
	o.setStatus(PickedUp, now)
	return nil
}

func (o *Order) MarkDelivered(now time.Time) error {
	if o.status != PickedUp {
		return fmt.Errorf("%w: cannot deliver a %s order", ErrInvalidState, o.status)
	}
	o.setStatus(Delivered, now)
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), o.events...)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) setStatus(to Status, now time.Time) {
	from := o.status
	o.status = to
	o.raise(StatusChanged{OrderID: o.id, CafeID: o.cafeID, From: from, To: to, At: now.UTC()})
}

func (o *Order) raise(e DomainEvent) {
	o.events = append(o.events, e)
}
