package order

import (
	"errors"
	"fmt"
	"math"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"
)

// LineItem is one cart line frozen into an order. Unit price and calories
// are copied at placement time so later menu changes do not alter the order.
type LineItem struct {
	itemID       kernel.UUID
	cafeID       kernel.UUID
	quantity     int
	assigneeID   *kernel.UUID
	unitPrice    float64
	unitCalories int
}

// NewLineItem validates quantity > 0 and non-negative price and calories.
// assigneeID names the group member who will consume the item and may be nil.
func NewLineItem(
	itemID, cafeID kernel.UUID,
	quantity int,
	assigneeID *kernel.UUID,
	unitPrice float64,
	unitCalories int,
) (*LineItem, error) {
	var checks []error
	checks = append(checks, itemID.Validate(), cafeID.Validate())
	if quantity <= 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) || unitPrice < 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%v is not a non-negative amount", unitPrice)))
	}
	if unitCalories < 0 {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("calories", fmt.Errorf("%d is negative", unitCalories)))
	}
	if assigneeID != nil {
		checks = append(checks, assigneeID.Validate())
	}
	if err := errors.Join(checks...); err != nil {
		return nil, err
	}

	li := &LineItem{
		itemID:       itemID,
		cafeID:       cafeID,
		quantity:     quantity,
		unitPrice:    unitPrice,
		unitCalories: unitCalories,
	}
	if assigneeID != nil {
		id := *assigneeID
		li.assigneeID = &id
	}
	return li, nil
}

func (li *LineItem) ItemID() kernel.UUID {
	return li.itemID
}

func (li *LineItem) CafeID() kernel.UUID {
	return li.cafeID
}

func (li *LineItem) Quantity() int {
	return li.quantity
}

func (li *LineItem) AssigneeID() *kernel.UUID {
	if li.assigneeID == nil {
		return nil
	}
	id := *li.assigneeID
	return &id
}

func (li *LineItem) UnitPrice() float64 {
	return li.unitPrice
}

func (li *LineItem) UnitCalories() int {
	return li.unitCalories
}

// SubtotalPrice is unit price times quantity, rounded to cents.
func (li *LineItem) SubtotalPrice() float64 {
	return roundCents(li.unitPrice * float64(li.quantity))
}

func (li *LineItem) SubtotalCalories() int {
	return li.unitCalories * li.quantity
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
