// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero-value instances can be told apart from
// ones built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Its zero value fails Validate.
//
//	type PlaceOrderCommand struct {
//	    customerID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c PlaceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced by ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
