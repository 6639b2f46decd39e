package queries

import (
	"errors"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/guard"
)

var ErrGetCafeOrdersQueryIsNotConstructed = errors.New(
	"GetCafeOrdersQuery must be created via NewGetCafeOrdersQuery constructor",
)

// GetCafeOrdersQuery lists a cafe's orders, optionally narrowed to one status.
type GetCafeOrdersQuery struct {
	cafeID kernel.UUID
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewGetCafeOrdersQuery accepts a nil status for all orders.
func NewGetCafeOrdersQuery(cafeID kernel.UUID, status *order.Status) (GetCafeOrdersQuery, error) {
	if err := cafeID.Validate(); err != nil {
		return GetCafeOrdersQuery{}, err
	}
	q := GetCafeOrdersQuery{cafeID: cafeID, guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetCafeOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q GetCafeOrdersQuery) CafeID() kernel.UUID {
	return q.cafeID
}

func (q GetCafeOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return order.Unknown, false
	}
	return *q.status, true
}

func (q GetCafeOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCafeOrdersQueryIsNotConstructed)
}
