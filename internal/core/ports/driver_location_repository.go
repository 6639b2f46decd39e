package ports

import (
	"context"
	"iter"
	"time"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
)

// DriverLocationRepository is the append-only driver location ledger.
type DriverLocationRepository interface {
	// Add appends a record. Records are never updated in place.
	Add(ctx context.Context, record *driver.LocationRecord) error

	// Latest returns the driver's record with the greatest timestamp, later
	// insertions winning ties, or errs.ErrObjectNotFound.
	Latest(ctx context.Context, driverID kernel.UUID) (*driver.LocationRecord, error)

	// AllIdle yields the latest record of every driver whose latest record is
	// IDLE, in ascending driver id order. Rows are streamed lazily and every
	// range over the sequence runs the query again.
	AllIdle(ctx context.Context) iter.Seq2[*driver.LocationRecord, error]

	// LockDriver serialises ledger writers for driverID until the current
	// transaction ends. It must run inside a transaction.
	LockDriver(ctx context.Context, driverID kernel.UUID) error

	// PruneBefore deletes records older than cutoff except each driver's
	// latest one and returns how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
