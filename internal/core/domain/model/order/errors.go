package order

import "errors"

var (
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrInvalidState              = errors.New("invalid order state")
	ErrCancellationWindowExpired = errors.New("cancellation window has passed")
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrMultiCafeCart             = errors.New("all items must be from the same cafe")
	ErrDriverAlreadyAssigned     = errors.New("order already has a driver")
	ErrNotAssignable             = errors.New("order is not in an assignable state")
)
