package driver

import (
	"errors"
	"fmt"
	"time"

	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"
)

var (
	ErrLocationRecordIsNotConstructed = errors.New("LocationRecord must be created via NewLocationRecord constructor")

	// ErrDriverUnavailable means the driver has no location record or is not idle.
	ErrDriverUnavailable = errors.New("driver is unavailable")
)

// LocationRecord is one immutable entry of the append-only driver location
// ledger. A driver's current position and status is its latest record.
type LocationRecord struct {
	driverID  kernel.UUID
	location  kernel.Location
	timestamp time.Time
	status    Status

	isConstructed bool
}

func NewLocationRecord(driverID kernel.UUID, location kernel.Location, timestamp time.Time, status Status) (*LocationRecord, error) {
	r := &LocationRecord{
		driverID:      driverID,
		location:      location,
		timestamp:     timestamp.UTC(),
		status:        status,
		isConstructed: true,
	}

	var tsErr error
	if timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}

	if err := errors.Join(driverID.Validate(), location.Validate(), status.Validate(), tsErr); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LocationRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrLocationRecordIsNotConstructed
	}
	return nil
}

func (r *LocationRecord) DriverID() kernel.UUID {
	return r.driverID
}

func (r *LocationRecord) Location() kernel.Location {
	return r.location
}

func (r *LocationRecord) Timestamp() time.Time {
	return r.timestamp
}

func (r *LocationRecord) Status() Status {
	return r.status
}

func (r *LocationRecord) IsIdle() bool {
	return r.status == Idle
}

// WithStatus returns the record that follows r when only the status changes:
// same position, new status, stamped at now or, if the clock lags, at r's own
// timestamp so the new record still sorts as the latest.
func (r *LocationRecord) WithStatus(status Status, now time.Time) (*LocationRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	ts := now.UTC()
	if ts.Before(r.timestamp) {
		ts = r.timestamp
	}
	return NewLocationRecord(r.driverID, r.location, ts, status)
}

// EnsureIdle returns ErrDriverUnavailable unless r is an idle record.
func (r *LocationRecord) EnsureIdle() error {
	if r == nil {
		return fmt.Errorf("%w: no location recorded", ErrDriverUnavailable)
	}
	if !r.IsIdle() {
		return fmt.Errorf("%w: driver %s is %s", ErrDriverUnavailable, r.driverID, r.status)
	}
	return nil
}
