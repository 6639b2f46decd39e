package queries

import (
	"errors"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists every order ever assigned to a driver.
type GetDriverOrdersQuery struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetDriverOrdersQuery(driverID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, err
	}
	return GetDriverOrdersQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}
