package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetCafeOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCafeOrdersQueryHandler(db *gorm.DB) GetCafeOrdersQueryHandler {
	return GetCafeOrdersQueryHandler{db: db}
}

// Handle returns the newest orders first.
func (h GetCafeOrdersQueryHandler) Handle(ctx context.Context, query GetCafeOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).
		Table("orders").
		Select(orderListColumns).
		Where("cafe_id = ?", query.CafeID().Bytes())
	if status, ok := query.Status(); ok {
		db = db.Where("status = ?", int(status))
	}

	rows, err := db.Order("created_at DESC, id").Rows()
	if err != nil {
		return nil, err
	}
	return collectOrderList(rows)
}
