// Package driverlocationrepo stores the append-only driver location ledger.
package driverlocationrepo

import (
	"time"

	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// LocationRecordDTO is a driver_locations row. Seq orders records inserted
// with the same timestamp.
type LocationRecordDTO struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;index:idx_driver_locations_latest,priority:1"`
	Timestamp time.Time `gorm:"not null;index:idx_driver_locations_latest,priority:2"`
	Lat       float64   `gorm:"not null"`
	Lng       float64   `gorm:"not null"`
	Status    string    `gorm:"size:16;not null"`
}

func (LocationRecordDTO) TableName() string {
	return "driver_locations"
}

func fromDomain(r *driver.LocationRecord) LocationRecordDTO {
	return LocationRecordDTO{
		DriverID:  r.DriverID().Bytes(),
		Timestamp: r.Timestamp(),
		Lat:       r.Location().Lat(),
		Lng:       r.Location().Lng(),
		Status:    r.Status().String(),
	}
}

func toDomain(dto LocationRecordDTO) (*driver.LocationRecord, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return driver.NewLocationRecord(driverID, loc, dto.Timestamp, status)
}
