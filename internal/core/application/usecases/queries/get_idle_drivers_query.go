package queries

import (
	"errors"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrGetIdleDriversQueryIsNotConstructed = errors.New(
	"GetIdleDriversQuery must be created via NewGetIdleDriversQuery constructor",
)

// GetIdleDriversQuery lists drivers whose latest location record is IDLE.
type GetIdleDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetIdleDriversQuery() GetIdleDriversQuery {
	return GetIdleDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetIdleDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetIdleDriversQueryIsNotConstructed)
}

type GetIdleDriversQueryResponse struct {
	DriverID  kernel.UUID
	Location  kernel.Location
	Timestamp time.Time
}
