package driverlocationrepo

import (
	"context"
	"errors"
	"iter"
	"time"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// latestPerDriver selects every driver's current record.
const latestPerDriver = `
	SELECT DISTINCT ON (driver_id) seq, driver_id, timestamp, lat, lng, status
	FROM driver_locations
	ORDER BY driver_id, timestamp DESC, seq DESC`

type GormDriverLocationRepository struct {
	db *gorm.DB
}

func NewGormDriverLocationRepository(db *gorm.DB) *GormDriverLocationRepository {
	return &GormDriverLocationRepository{db: db}
}

func (r *GormDriverLocationRepository) Add(ctx context.Context, record *driver.LocationRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDriverLocationRepository) Latest(ctx context.Context, driverID kernel.UUID) (*driver.LocationRecord, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto LocationRecordDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("timestamp DESC, seq DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("driver location", driverID)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// AllIdle keeps a cursor open while the caller ranges. Callers inside a
// transaction must finish ranging before they issue other statements.
func (r *GormDriverLocationRepository) AllIdle(ctx context.Context) iter.Seq2[*driver.LocationRecord, error] {
	return func(yield func(*driver.LocationRecord, error) bool) {
		rows, err := r.db.WithContext(ctx).
			Raw(`SELECT * FROM (`+latestPerDriver+`) latest WHERE status = ? ORDER BY driver_id`, driver.Idle.String()).
			Rows()
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto LocationRecordDTO
			if err = r.db.ScanRows(rows, &dto); err != nil {
				yield(nil, err)
				return
			}
			if !yield(toDomain(dto)) {
				return
			}
		}
		if err = rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// LockDriver takes a transaction-scoped advisory lock keyed by the driver id.
func (r *GormDriverLocationRepository) LockDriver(ctx context.Context, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(`SELECT pg_advisory_xact_lock(hashtextextended(?, 0))`, driverID.String()).Error
}

func (r *GormDriverLocationRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM driver_locations d
		WHERE d.timestamp < ?
		  AND EXISTS (
			SELECT 1 FROM driver_locations n
			WHERE n.driver_id = d.driver_id
			  AND (n.timestamp > d.timestamp OR (n.timestamp = d.timestamp AND n.seq > d.seq))
		  )`, cutoff.UTC())
	return result.RowsAffected, result.Error
}
