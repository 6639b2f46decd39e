package commands_test

import (
	"testing"
	"time"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func fixedClock() clock.Fixed {
	return clock.Fixed(now)
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func driverActor(t *testing.T, driverID kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(driverID, actor.Driver)
	require.NoError(t, err)
	return a
}

// storedOrder is an order as a repository would load it, placed an hour
// before now with a deadline relative to now.
func storedOrder(t *testing.T, status order.Status, driverID *kernel.UUID, deadline time.Time) *order.Order {
	t.Helper()
	cafeID := kernel.NewUUID()
	li, err := order.NewLineItem(kernel.NewUUID(), cafeID, 2, nil, 10, 100)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), cafeID, driverID, status,
		now.Add(-time.Hour), deadline, "A1B2C3", 20, 200, []*order.LineItem{li})
	require.NoError(t, err)
	return o
}

func orderIn(t *testing.T, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()
	return storedOrder(t, status, driverID, now.Add(10*time.Minute))
}

func locationRecord(t *testing.T, driverID kernel.UUID, lat, lng float64, status driver.Status) *driver.LocationRecord {
	t.Helper()
	rec, err := driver.NewLocationRecord(driverID, kernel.MustLocation(lat, lng), now.Add(-time.Minute), status)
	require.NoError(t, err)
	return rec
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}
