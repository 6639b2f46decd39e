package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderListColumns+`
		FROM orders
		WHERE driver_id = ?
		ORDER BY created_at DESC, id`, query.DriverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	return collectOrderList(rows)
}
