package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderListColumns+`
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC, id`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	return collectOrderList(rows)
}
