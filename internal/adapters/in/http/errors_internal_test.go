package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "1"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", "1")), http.StatusNotFound},
		{"forbidden", errs.NewForbiddenError("cancel order"), http.StatusForbidden},
		{"invalid transition", fmt.Errorf("%w: PENDING -> DELIVERED", order.ErrInvalidTransition), http.StatusBadRequest},
		{"window expired", order.ErrCancellationWindowExpired, http.StatusBadRequest},
		{"no idle driver", services.ErrNoIdleDriver, http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("lat", 91, -90, 90), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCode(tt.err))
		})
	}
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/status"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/drivers/available"))
}

func TestStatusRequest_PrefersNewStatus(t *testing.T) {
	assert.Equal(t, "READY", statusRequest{Status: "ACCEPTED", NewStatus: "READY"}.value())
	assert.Equal(t, "ACCEPTED", statusRequest{Status: "ACCEPTED"}.value())
	assert.Empty(t, statusRequest{}.value())
}
