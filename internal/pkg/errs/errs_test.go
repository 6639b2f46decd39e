package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"cafedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("no rows")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("order", "42"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 42",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("cafe", "7", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: cafe, ID is: 7 (cause: no rows)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("pickup code"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: pickup code",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", errors.New(`"LOST" is not a valid order status`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: status (cause: "LOST" is not a valid order status)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("lat", 91, -90, 90),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 91 is lat, min value is -90, max value is 90",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 99, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 99 (cause: no rows)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("cafe_id"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: cafe_id",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("status", errors.New("EOF")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: status (cause: EOF)",
		},
		{
			name:     "version",
			err:      errs.NewVersionIsInvalidError("schema", errors.New("bad semver")),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: schema (cause: bad semver)",
		},
		{
			name:     "version without cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("schema"),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: schema",
		},
		{
			name:     "forbidden",
			err:      errs.NewForbiddenError("assign driver"),
			sentinel: errs.ErrForbidden,
			message:  "forbidden: assign driver",
		},
		{
			name:     "forbidden with cause",
			err:      errs.NewForbiddenErrorWithCause("manage cafe orders", errors.New("not on staff")),
			sentinel: errs.ErrForbidden,
			message:  "forbidden: manage cafe orders (cause: not on staff)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
		})
	}
}

func TestErrorsAs_KeepsDetails(t *testing.T) {
	err := fmt.Errorf("load order: %w", errs.NewObjectNotFoundError("order", "42"))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "order", notFound.ParamName)
	assert.Equal(t, "42", notFound.ID)
	assert.NoError(t, notFound.Cause)
}

func TestOutOfRange_FlattensMultilineValues(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("note", "first\r\nsecond\nthird", 0, 10)

	assert.Contains(t, err.Error(), "first second third")
	assert.NotContains(t, err.Error(), "\n")
	assert.NotContains(t, err.Error(), "\r")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrVersionIsInvalid,
		errs.ErrForbidden,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
