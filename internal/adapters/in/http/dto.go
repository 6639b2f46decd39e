package http

import (
	"time"

	"cafedelivery/internal/core/application/usecases/queries"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
)

type OrderState struct {
	OrderID  kernel.UUID  `json:"order_id"`
	Status   order.Status `json:"status"`
	DriverID *kernel.UUID `json:"driver_id"`
}

func newOrderState(o *order.Order) OrderState {
	return OrderState{OrderID: o.ID(), Status: o.Status(), DriverID: o.DriverID()}
}

type OrderLine struct {
	ItemID           kernel.UUID  `json:"item_id"`
	Quantity         int          `json:"quantity"`
	AssigneeID       *kernel.UUID `json:"assignee_id"`
	UnitPrice        float64      `json:"unit_price"`
	UnitCalories     int          `json:"unit_calories"`
	SubtotalPrice    float64      `json:"subtotal_price"`
	SubtotalCalories int          `json:"subtotal_calories"`
}

type Order struct {
	ID             kernel.UUID  `json:"id"`
	CustomerID     kernel.UUID  `json:"customer_id"`
	CafeID         kernel.UUID  `json:"cafe_id"`
	DriverID       *kernel.UUID `json:"driver_id"`
	Status         order.Status `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	CancelDeadline time.Time    `json:"cancel_deadline"`
	PickupCode     string       `json:"pickup_code"`
	TotalPrice     float64      `json:"total_price"`
	TotalCalories  int          `json:"total_calories"`
	Lines          []OrderLine  `json:"lines"`
}

func newOrder(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, li := range o.Lines() {
		lines = append(lines, OrderLine{
			ItemID:           li.ItemID(),
			Quantity:         li.Quantity(),
			AssigneeID:       li.AssigneeID(),
			UnitPrice:        li.UnitPrice(),
			UnitCalories:     li.UnitCalories(),
			SubtotalPrice:    li.SubtotalPrice(),
			SubtotalCalories: li.SubtotalCalories(),
		})
	}
	return Order{
		ID:             o.ID(),
		CustomerID:     o.CustomerID(),
		CafeID:         o.CafeID(),
		DriverID:       o.DriverID(),
		Status:         o.Status(),
		CreatedAt:      o.CreatedAt(),
		CancelDeadline: o.CancelDeadline(),
		PickupCode:     o.PickupCode(),
		TotalPrice:     o.TotalPrice(),
		TotalCalories:  o.TotalCalories(),
		Lines:          lines,
	}
}

func newOrderFromSummary(s queries.GetOrderSummaryQueryResponse) Order {
	lines := make([]OrderLine, 0, len(s.Lines))
	for _, li := range s.Lines {
		lines = append(lines, OrderLine(li))
	}
	return Order{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		CafeID:         s.CafeID,
		DriverID:       s.DriverID,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		CancelDeadline: s.CancelDeadline,
		PickupCode:     s.PickupCode,
		TotalPrice:     s.TotalPrice,
		TotalCalories:  s.TotalCalories,
		Lines:          lines,
	}
}

type OrderListItem struct {
	ID            kernel.UUID  `json:"id"`
	CustomerID    kernel.UUID  `json:"customer_id"`
	CafeID        kernel.UUID  `json:"cafe_id"`
	DriverID      *kernel.UUID `json:"driver_id"`
	Status        order.Status `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	TotalPrice    float64      `json:"total_price"`
	TotalCalories int          `json:"total_calories"`
}

func newOrderList(items []queries.OrderListItem) []OrderListItem {
	out := make([]OrderListItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderListItem(it))
	}
	return out
}

type DriverLocation struct {
	DriverID  kernel.UUID   `json:"driver_id"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Status    driver.Status `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

func newDriverLocation(r *driver.LocationRecord) DriverLocation {
	return DriverLocation{
		DriverID:  r.DriverID(),
		Lat:       r.Location().Lat(),
		Lng:       r.Location().Lng(),
		Status:    r.Status(),
		Timestamp: r.Timestamp(),
	}
}

type placeOrderRequest struct {
	CafeID string `json:"cafe_id"`
}

type assignDriverRequest struct {
	DriverID *string `json:"driver_id"`
}

type statusRequest struct {
	Status    string `json:"status"`
	NewStatus string `json:"new_status"`
}

func (r statusRequest) value() string {
	if r.NewStatus != "" {
		return r.NewStatus
	}
	return r.Status
}

type recordLocationRequest struct {
	Lat       *float64   `json:"lat"`
	Lng       *float64   `json:"lng"`
	Status    string     `json:"status"`
	Timestamp *time.Time `json:"timestamp"`
}
