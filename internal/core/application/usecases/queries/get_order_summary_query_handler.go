package queries

import (
	"context"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler reads an order and its lines with two
// statements so that no aggregate has to be rebuilt.
//
//	handler := NewGetOrderSummaryQueryHandler(db)
//	query, _ := NewGetOrderSummaryQuery(orderID)
//	summary, err := handler.Handle(ctx, query)
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var (
		summary            GetOrderSummaryQueryResponse
		customerID, cafeID uuid.UUID
		driverID           *uuid.UUID
		status             int
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT customer_id, cafe_id, driver_id, status, created_at, cancel_deadline,
		       pickup_code, total_price, total_calories
		FROM orders
		WHERE id = ?`, query.OrderID().Bytes()).Row()
	if err := row.Err(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	err := row.Scan(&customerID, &cafeID, &driverID, &status, &summary.CreatedAt, &summary.CancelDeadline,
		&summary.PickupCode, &summary.TotalPrice, &summary.TotalCalories)
	if isNoRows(err) {
		return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	summary.ID = query.OrderID()
	if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if summary.CafeID, err = kernel.UUIDFromBytes(cafeID[:]); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if summary.DriverID, err = optionalUUID(driverID); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	summary.Status = order.Status(status)
	summary.CreatedAt = summary.CreatedAt.UTC()
	summary.CancelDeadline = summary.CancelDeadline.UTC()

	if summary.Lines, err = h.lines(ctx, query.OrderID()); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	return summary, nil
}

func (h GetOrderSummaryQueryHandler) lines(ctx context.Context, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT item_id, quantity, assignee_id, unit_price, unit_calories, subtotal_price, subtotal_calories
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			line     OrderLineResponse
			itemID   uuid.UUID
			assignee *uuid.UUID
		)
		err = rows.Scan(&itemID, &line.Quantity, &assignee, &line.UnitPrice, &line.UnitCalories,
			&line.SubtotalPrice, &line.SubtotalCalories)
		if err != nil {
			return nil, err
		}
		if line.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		if line.AssigneeID, err = optionalUUID(assignee); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
