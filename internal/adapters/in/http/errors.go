package http

import (
	"errors"
	"fmt"
	"net/http"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// badRequest lists business errors that are the caller's fault.
var badRequest = []error{
	order.ErrInvalidTransition,
	order.ErrInvalidState,
	order.ErrCancellationWindowExpired,
	order.ErrEmptyCart,
	order.ErrMultiCafeCart,
	order.ErrDriverAlreadyAssigned,
	order.ErrNotAssignable,
	driver.ErrDriverUnavailable,
	services.ErrNoIdleDriver,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsRequired,
	errs.ErrValueIsOutOfRange,
}

// statusCode maps an error returned by a use case to an HTTP status.
// Anything unrecognised is a storage or programming error.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// errorHandler is installed as echo's HTTPErrorHandler, so handlers simply
// return use case errors. Internal errors are reported without detail.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = errorJSON(c, httpErr.Code, fmt.Sprint(httpErr.Message))
		return
	}

	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}
	_ = errorJSON(c, code, message)
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}
