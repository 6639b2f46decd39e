package ports

import (
	"context"
	"time"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"
)

// Authorizer decides whether an actor may act on a cafe's orders.
type Authorizer interface {
	// RequireCafeStaffOrOwnerOrAdmin returns errs.ErrForbidden unless the actor
	// owns the cafe, is on its staff, or is an admin.
	RequireCafeStaffOrOwnerOrAdmin(ctx context.Context, cafeID kernel.UUID, a actor.Actor) error

	// RequireRole returns errs.ErrForbidden unless the actor holds one of roles.
	RequireRole(a actor.Actor, roles ...actor.Role) error
}

// CartLine is a row of a customer's cart joined with the menu item it refers to.
type CartLine struct {
	ItemID     kernel.UUID
	CafeID     kernel.UUID
	UnitPrice  float64
	Calories   int
	Quantity   int
	AssigneeID *kernel.UUID
}

// CartRepository reads and clears the customer's cart. Cart editing lives elsewhere.
type CartRepository interface {
	CurrentLines(ctx context.Context, customerID kernel.UUID) ([]CartLine, error)
	Clear(ctx context.Context, customerID kernel.UUID) error
}

// CafeRepository resolves cafe coordinates for dispatch.
type CafeRepository interface {
	// Location returns errs.ErrObjectNotFound for an unknown cafe.
	Location(ctx context.Context, cafeID kernel.UUID) (kernel.Location, error)
}

type Clock interface {
	Now() time.Time
}
