package queries

import (
	"errors"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

type GetCustomerOrdersQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerOrdersQuery{}, err
	}
	return GetCustomerOrdersQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}
