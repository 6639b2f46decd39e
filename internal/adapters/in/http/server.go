// Package http is the REST adapter of the cafe delivery service: echo
// handlers that translate requests into commands and queries, request
// validation against the embedded OpenAPI document, and the mapping of
// use case errors to status codes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/core/application/usecases/queries"
	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CommandHandler is any use case that takes a command and returns what it changed.
type CommandHandler[C, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// QueryHandler is any read use case.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder        CommandHandler[commands.PlaceOrderCommand, *order.Order]
	CancelOrder       CommandHandler[commands.CancelOrderCommand, *order.Order]
	ChangeOrderStatus CommandHandler[commands.ChangeOrderStatusCommand, *order.Order]
	AssignDriver      CommandHandler[commands.AssignDriverCommand, *order.Order]
	DriverOrderStatus CommandHandler[commands.DriverOrderStatusCommand, *order.Order]
	RecordLocation    CommandHandler[commands.RecordDriverLocationCommand, *driver.LocationRecord]
	SetDriverStatus   CommandHandler[commands.SetDriverStatusCommand, *driver.LocationRecord]

	OrderSummary   QueryHandler[queries.GetOrderSummaryQuery, queries.GetOrderSummaryQueryResponse]
	CafeOrders     QueryHandler[queries.GetCafeOrdersQuery, []queries.OrderListItem]
	CustomerOrders QueryHandler[queries.GetCustomerOrdersQuery, []queries.OrderListItem]
	DriverOrders   QueryHandler[queries.GetDriverOrdersQuery, []queries.OrderListItem]
	IdleDrivers    QueryHandler[queries.GetIdleDriversQuery, []queries.GetIdleDriversQueryResponse]
}

type Server struct {
	handlers   Handlers
	authorizer ports.Authorizer
}

func NewServer(handlers Handlers, authorizer ports.Authorizer) *Server {
	return &Server{handlers: handlers, authorizer: authorizer}
}

// Register mounts the API routes on g. The group must run actorMiddleware.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.PlaceOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/cancel", s.CancelOrder)
	g.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	g.POST("/orders/:orderId/assign", s.AssignDriver)
	g.POST("/orders/:orderId/pickup", s.PickupOrder)
	g.POST("/orders/:orderId/deliver", s.DeliverOrder)
	g.GET("/cafes/:cafeId/orders", s.GetCafeOrders)
	g.GET("/customers/me/orders", s.GetMyOrders)

	g.POST("/drivers/me/location", s.RecordDriverLocation)
	g.GET("/drivers/available", s.GetIdleDrivers)
	g.PUT("/drivers/:driverId/status", s.SetDriverStatus)
	g.GET("/drivers/:driverId/orders", s.GetDriverOrders)
	g.POST("/drivers/:driverId/orders/:orderId/status", s.ChangeDriverOrderStatus)
}

// PlaceOrder handles POST /api/v1/orders from the caller's cart.
func (s *Server) PlaceOrder(c echo.Context) error {
	a := actorFrom(c)
	if err := s.authorizer.RequireRole(a, actor.Customer); err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	cafeID, err := kernel.UUIDFromString(req.CafeID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cafe_id", err)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), a.ID(), cafeID)
	if err != nil {
		return err
	}
	o, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newOrder(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}. Customers see only their
// own orders, drivers only the ones assigned to them, everyone else needs
// rights on the order's cafe.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return err
	}
	summary, err := s.handlers.OrderSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	a := actorFrom(c)
	switch {
	case a.IsAdmin():
	case a.HasRole(actor.Customer):
		if !summary.CustomerID.IsEqual(a.ID()) {
			return errs.NewObjectNotFoundError("order", orderID)
		}
	case a.HasRole(actor.Driver):
		if summary.DriverID == nil || !summary.DriverID.IsEqual(a.ID()) {
			return errs.NewObjectNotFoundError("order", orderID)
		}
	default:
		if err = s.authorizer.RequireCafeStaffOrOwnerOrAdmin(c.Request().Context(), summary.CafeID, a); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, newOrderFromSummary(summary))
}

func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, actorFrom(c).ID())
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.CancelOrder, cmd)
}

// ChangeOrderStatus moves an order to the status read by orderStatusInput.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	value, err := orderStatusInput(c)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(value)
	if err != nil {
		return err
	}
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actorFrom(c), status)
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.ChangeOrderStatus, cmd)
}

// AssignDriver assigns the given driver, or the nearest idle one when the
// body or its driver_id is absent.
func (s *Server) AssignDriver(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var req assignDriverRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}

	var driverID *kernel.UUID
	if req.DriverID != nil {
		id, parseErr := kernel.UUIDFromString(*req.DriverID)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("driver_id", parseErr)
		}
		driverID = &id
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, actorFrom(c), driverID)
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.AssignDriver, cmd)
}

// PickupOrder is the calling driver collecting the order at the cafe.
func (s *Server) PickupOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	a := actorFrom(c)
	cmd, err := commands.NewPickupOrderCommand(orderID, a.ID(), a)
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.DriverOrderStatus, cmd)
}

func (s *Server) DeliverOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	a := actorFrom(c)
	cmd, err := commands.NewDeliverOrderCommand(orderID, a.ID(), a)
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.DriverOrderStatus, cmd)
}

// ChangeDriverOrderStatus lets a driver, or an admin acting for one, move an
// assigned order to PICKED_UP or DELIVERED.
func (s *Server) ChangeDriverOrderStatus(c echo.Context) error {
	driverID, err := pathUUID(c, "driverId")
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	value, err := orderStatusInput(c)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(value)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDriverOrderStatusCommand(orderID, driverID, actorFrom(c), status)
	if err != nil {
		return err
	}
	return respondOrderState(c, s.handlers.DriverOrderStatus, cmd)
}

func (s *Server) GetCafeOrders(c echo.Context) error {
	cafeID, err := pathUUID(c, "cafeId")
	if err != nil {
		return err
	}
	if err = s.authorizer.RequireCafeStaffOrOwnerOrAdmin(c.Request().Context(), cafeID, actorFrom(c)); err != nil {
		return err
	}

	var raw *string
	if err = runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	var status *order.Status
	if raw != nil && strings.TrimSpace(*raw) != "" {
		st, parseErr := order.ParseStatus(*raw)
		if parseErr != nil {
			return parseErr
		}
		status = &st
	}

	query, err := queries.NewGetCafeOrdersQuery(cafeID, status)
	if err != nil {
		return err
	}
	items, err := s.handlers.CafeOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderList(items))
}

func (s *Server) GetMyOrders(c echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(actorFrom(c).ID())
	if err != nil {
		return err
	}
	items, err := s.handlers.CustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderList(items))
}

func (s *Server) GetDriverOrders(c echo.Context) error {
	driverID, err := pathUUID(c, "driverId")
	if err != nil {
		return err
	}
	a := actorFrom(c)
	if !a.IsAdmin() && !(a.HasRole(actor.Driver) && a.ID().IsEqual(driverID)) {
		return errs.NewForbiddenError("list driver orders")
	}

	query, err := queries.NewGetDriverOrdersQuery(driverID)
	if err != nil {
		return err
	}
	items, err := s.handlers.DriverOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderList(items))
}

func (s *Server) RecordDriverLocation(c echo.Context) error {
	var req recordLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Lat == nil || req.Lng == nil {
		return errs.NewValueIsRequiredError("lat and lng")
	}

	location, err := kernel.NewLocation(*req.Lat, *req.Lng)
	if err != nil {
		return err
	}
	var status driver.Status
	if req.Status != "" {
		if status, err = driver.ParseStatus(req.Status); err != nil {
			return err
		}
	}
	var ts time.Time
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	a := actorFrom(c)
	cmd, err := commands.NewRecordDriverLocationCommand(a.ID(), location, ts, status, a)
	if err != nil {
		return err
	}
	record, err := s.handlers.RecordLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDriverLocation(record))
}

func (s *Server) SetDriverStatus(c echo.Context) error {
	driverID, err := pathUUID(c, "driverId")
	if err != nil {
		return err
	}
	value, err := statusFromBody(c)
	if err != nil {
		return err
	}
	status, err := driver.ParseStatus(value)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetDriverStatusCommand(driverID, status, actorFrom(c))
	if err != nil {
		return err
	}
	record, err := s.handlers.SetDriverStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDriverLocation(record))
}

func (s *Server) GetIdleDrivers(c echo.Context) error {
	if err := s.authorizer.RequireRole(actorFrom(c), actor.Owner, actor.Staff, actor.Admin); err != nil {
		return err
	}

	idle, err := s.handlers.IdleDrivers.Handle(c.Request().Context(), queries.NewGetIdleDriversQuery())
	if err != nil {
		return err
	}

	out := make([]DriverLocation, 0, len(idle))
	for _, d := range idle {
		out = append(out, DriverLocation{
			DriverID:  d.DriverID,
			Lat:       d.Location.Lat(),
			Lng:       d.Location.Lng(),
			Status:    driver.Idle,
			Timestamp: d.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func respondOrderState[C any](c echo.Context, h CommandHandler[C, *order.Order], cmd C) error {
	o, err := h.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderState(o))
}

// pathUUID binds a UUID path parameter the way generated oapi-codegen
// wrappers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// orderStatusInput takes the status from ?new_status=, a JSON string body,
// or a {"new_status"} / {"status"} object, in that order.
func orderStatusInput(c echo.Context) (string, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "new_status", c.QueryParams(), &raw); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("new_status", err)
	}
	if raw != nil && strings.TrimSpace(*raw) != "" {
		return *raw, nil
	}
	return statusFromBody(c)
}

// statusFromBody accepts a bare JSON string or an object with new_status or
// status. An empty body yields a required-value error.
func statusFromBody(c echo.Context) (string, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause("status", err)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var req statusRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("status", errors.New("expected a string or an object"))
	}
	if req.value() == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	return req.value(), nil
}
