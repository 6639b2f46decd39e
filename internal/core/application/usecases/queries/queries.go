// Package queries contains the read side: plain SQL over the order and
// driver tables, returning read models instead of aggregates.
package queries

import (
	"database/sql"
	"errors"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderListItem is one row of an order listing.
type OrderListItem struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CafeID        kernel.UUID
	DriverID      *kernel.UUID
	Status        order.Status
	CreatedAt     time.Time
	TotalPrice    float64
	TotalCalories int
}

const orderListColumns = `id, customer_id, cafe_id, driver_id, status, created_at, total_price, total_calories`

func scanOrderListItem(rows *sql.Rows) (OrderListItem, error) {
	var (
		item                   OrderListItem
		id, customerID, cafeID uuid.UUID
		driverID               *uuid.UUID
		status                 int
	)
	err := rows.Scan(&id, &customerID, &cafeID, &driverID, &status, &item.CreatedAt, &item.TotalPrice, &item.TotalCalories)
	if err != nil {
		return OrderListItem{}, err
	}

	if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderListItem{}, err
	}
	if item.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderListItem{}, err
	}
	if item.CafeID, err = kernel.UUIDFromBytes(cafeID[:]); err != nil {
		return OrderListItem{}, err
	}
	if item.DriverID, err = optionalUUID(driverID); err != nil {
		return OrderListItem{}, err
	}
	item.Status = order.Status(status)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func collectOrderList(rows *sql.Rows) ([]OrderListItem, error) {
	defer rows.Close()

	items := make([]OrderListItem, 0)
	for rows.Next() {
		item, err := scanOrderListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
