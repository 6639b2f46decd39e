package kernel

import (
	"errors"
	"fmt"
	"math"

	"cafedelivery/internal/pkg/errs"
	"cafedelivery/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a validated geographic point in decimal degrees.
// It is an immutable value object; the zero value fails Validate.
//
//	cafe, err := kernel.NewLocation(52.5200, 13.4050)
//	if err != nil {
//	    return err
//	}
//	km := cafe.DistanceTo(driverLocation)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates lat in [-90, 90] and lng in [-180, 180].
// All violations are reported together.
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustLocation is NewLocation for coordinates known to be valid. It panics otherwise.
func MustLocation(lat, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceTo returns the great-circle distance to other in kilometres.
func (l Location) DistanceTo(other Location) float64 {
	return DistanceKm(l.lat, l.lng, other.lat, other.lng)
}

// setLat and setLng use pointer receivers so the constructor can validate in place.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}
