package queries

import (
	"context"

	"cafedelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetIdleDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetIdleDriversQueryHandler(db *gorm.DB) GetIdleDriversQueryHandler {
	return GetIdleDriversQueryHandler{db: db}
}

// Handle orders drivers by id. Only each driver's latest record counts, so a
// driver whose newest record is OCCUPIED is left out even if older ones are IDLE.
func (h GetIdleDriversQueryHandler) Handle(
	ctx context.Context,
	query GetIdleDriversQuery,
) ([]GetIdleDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT driver_id, lat, lng, timestamp
		FROM (
			SELECT DISTINCT ON (driver_id) driver_id, lat, lng, timestamp, status
			FROM driver_locations
			ORDER BY driver_id, timestamp DESC, seq DESC
		) latest
		WHERE status = 'IDLE'
		ORDER BY driver_id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetIdleDriversQueryResponse, 0)
	for rows.Next() {
		var (
			d        GetIdleDriversQueryResponse
			id       uuid.UUID
			lat, lng float64
		)
		if err = rows.Scan(&id, &lat, &lng, &d.Timestamp); err != nil {
			return nil, err
		}
		if d.DriverID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if d.Location, err = kernel.NewLocation(lat, lng); err != nil {
			return nil, err
		}
		d.Timestamp = d.Timestamp.UTC()
		drivers = append(drivers, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return drivers, nil
}
