package commands_test

import (
	"errors"
	"iter"
	"testing"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/domain/services"
	"cafedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func idleSeq(records ...*driver.LocationRecord) iter.Seq2[*driver.LocationRecord, error] {
	return func(yield func(*driver.LocationRecord, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

type assignFixture struct {
	orders  *MockOrderRepository
	ledger  *MockDriverLocationRepository
	uow     *MockUoW
	factory *MockUoWFactory
	auth    *MockAuthorizer
	cafes   *MockCafeRepository
	handler commands.AssignDriverCommandHandler
}

func newAssignFixture() *assignFixture {
	f := &assignFixture{
		orders:  new(MockOrderRepository),
		ledger:  new(MockDriverLocationRepository),
		uow:     new(MockUoW),
		factory: new(MockUoWFactory),
		auth:    new(MockAuthorizer),
		cafes:   new(MockCafeRepository),
	}
	uowWith(f.uow, f.orders, f.ledger)
	f.factory.On("Create").Return(f.uow)
	f.handler = commands.NewAssignDriverCommandHandler(f.factory, f.auth, f.cafes, fixedClock())
	return f
}

func (f *assignFixture) assertExpectations(t *testing.T) {
	f.orders.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.auth.AssertExpectations(t)
	f.cafes.AssertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_ManualSuccess(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	// Given an accepted order and an idle driver
	o := orderIn(t, order.Accepted, nil)
	driverID := kernel.NewUUID()
	by := newActor(t, actor.Staff)

	var added *driver.LocationRecord
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()
	f.ledger.On("LockDriver", ctx, driverID).Return(nil).Once()
	f.ledger.On("Latest", ctx, driverID).Return(locationRecord(t, driverID, 1, 1, driver.Idle), nil).Once()
	f.ledger.On("Add", ctx, mock.AnythingOfType("*driver.LocationRecord")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*driver.LocationRecord) }).
		Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewAssignDriverCommand(o.ID(), by, &driverID)
	require.NoError(t, err)

	// When
	got, err := f.handler.Handle(ctx, cmd)

	// Then the order references the driver and the driver is occupied
	require.NoError(t, err)
	require.NotNil(t, got.DriverID())
	assert.True(t, got.DriverID().IsEqual(driverID))
	require.NotNil(t, added)
	assert.Equal(t, driver.Occupied, added.Status())
	assert.True(t, added.DriverID().IsEqual(driverID))
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_AutoPicksNearestIdleDriver(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	// Given a cafe at (0,0), one idle driver 0.01° away and one 5° away
	o := orderIn(t, order.Ready, nil)
	nearID, farID := kernel.NewUUID(), kernel.NewUUID()
	near := locationRecord(t, nearID, 0.01, 0, driver.Idle)
	far := locationRecord(t, farID, 5, 0, driver.Idle)

	var added *driver.LocationRecord
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), actor.System()).Return(nil).Once()
	f.cafes.On("Location", ctx, o.CafeID()).Return(kernel.MustLocation(0, 0), nil).Once()
	f.ledger.On("AllIdle", ctx).Return(idleSeq(far, near)).Once()
	f.ledger.On("LockDriver", ctx, nearID).Return(nil).Once()
	f.ledger.On("Latest", ctx, nearID).Return(near, nil).Once()
	f.ledger.On("Add", ctx, mock.AnythingOfType("*driver.LocationRecord")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*driver.LocationRecord) }).
		Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewAutoAssignDriverCommand(o.ID(), actor.System())
	require.NoError(t, err)

	// When
	got, err := f.handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.True(t, got.IsAssignedTo(nearID))
	assert.True(t, added.DriverID().IsEqual(nearID))
	assert.Equal(t, driver.Occupied, added.Status())
	f.ledger.AssertNotCalled(t, "LockDriver", ctx, farID)
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_AutoSkipsDriverTakenAfterScan(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	// Given the nearest driver became occupied between the scan and the lock
	o := orderIn(t, order.Accepted, nil)
	nearID, farID := kernel.NewUUID(), kernel.NewUUID()
	near := locationRecord(t, nearID, 0.01, 0, driver.Idle)
	far := locationRecord(t, farID, 1, 0, driver.Idle)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), actor.System()).Return(nil).Once()
	f.cafes.On("Location", ctx, o.CafeID()).Return(kernel.MustLocation(0, 0), nil).Once()
	f.ledger.On("AllIdle", ctx).Return(idleSeq(near, far)).Once()
	f.ledger.On("LockDriver", ctx, nearID).Return(nil).Once()
	f.ledger.On("Latest", ctx, nearID).Return(locationRecord(t, nearID, 0.01, 0, driver.Occupied), nil).Once()
	f.ledger.On("LockDriver", ctx, farID).Return(nil).Once()
	f.ledger.On("Latest", ctx, farID).Return(far, nil).Once()
	f.ledger.On("Add", ctx, mock.AnythingOfType("*driver.LocationRecord")).Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewAutoAssignDriverCommand(o.ID(), actor.System())
	require.NoError(t, err)

	// When
	got, err := f.handler.Handle(ctx, cmd)

	// Then the next candidate is used
	require.NoError(t, err)
	assert.True(t, got.IsAssignedTo(farID))
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_NoIdleDriver(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	o := orderIn(t, order.Accepted, nil)
	by := newActor(t, actor.Owner)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()
	f.cafes.On("Location", ctx, o.CafeID()).Return(kernel.MustLocation(0, 0), nil).Once()
	f.ledger.On("AllIdle", ctx).Return(idleSeq()).Once()

	cmd, err := commands.NewAutoAssignDriverCommand(o.ID(), by)
	require.NoError(t, err)

	got, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoIdleDriver)
	assert.Nil(t, got)
	assert.False(t, o.HasDriver())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	// Given an order that already has a driver
	o := orderIn(t, order.Accepted, ptr(kernel.NewUUID()))
	by := newActor(t, actor.Staff)
	other := kernel.NewUUID()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()

	cmd, err := commands.NewAssignDriverCommand(o.ID(), by, &other)
	require.NoError(t, err)

	// When assign is called again
	_, err = f.handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, order.ErrDriverAlreadyAssigned)
	f.ledger.AssertNotCalled(t, "LockDriver", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_NotAssignableStatus(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Declined, order.Refunded} {
		t.Run(status.String(), func(t *testing.T) {
			ctx := t.Context()
			f := newAssignFixture()

			o := orderIn(t, status, nil)
			by := newActor(t, actor.Admin)

			f.uow.On("Begin", ctx).Return(nil).Once()
			f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()

			cmd, err := commands.NewAutoAssignDriverCommand(o.ID(), by)
			require.NoError(t, err)

			_, err = f.handler.Handle(ctx, cmd)
			require.ErrorIs(t, err, order.ErrNotAssignable)
			f.assertExpectations(t)
		})
	}
}

func TestAssignDriverCommandHandler_Handle_ManualDriverUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		latest func(t *testing.T, id kernel.UUID) (*driver.LocationRecord, error)
	}{
		{
			name: "occupied",
			latest: func(t *testing.T, id kernel.UUID) (*driver.LocationRecord, error) {
				return locationRecord(t, id, 0, 0, driver.Occupied), nil
			},
		},
		{
			name: "no location",
			latest: func(_ *testing.T, id kernel.UUID) (*driver.LocationRecord, error) {
				return nil, errs.NewObjectNotFoundError("driver location", id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newAssignFixture()

			o := orderIn(t, order.Accepted, nil)
			by := newActor(t, actor.Staff)
			driverID := kernel.NewUUID()
			rec, recErr := tt.latest(t, driverID)

			f.uow.On("Begin", ctx).Return(nil).Once()
			f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()
			f.ledger.On("LockDriver", ctx, driverID).Return(nil).Once()
			f.ledger.On("Latest", ctx, driverID).Return(rec, recErr).Once()

			cmd, err := commands.NewAssignDriverCommand(o.ID(), by, &driverID)
			require.NoError(t, err)

			_, err = f.handler.Handle(ctx, cmd)
			require.ErrorIs(t, err, driver.ErrDriverUnavailable)
			assert.False(t, o.HasDriver())
			f.ledger.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestAssignDriverCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	o := orderIn(t, order.Accepted, nil)
	by := newActor(t, actor.Customer)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).
		Return(errs.NewForbiddenError("assign driver")).Once()

	cmd, err := commands.NewAutoAssignDriverCommand(o.ID(), by)
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	f.assertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()
	id := kernel.NewUUID()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

	cmd, err := commands.NewAutoAssignDriverCommand(id, newActor(t, actor.Staff))
	require.NoError(t, err)

	_, err = f.handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.auth.AssertNotCalled(t, "RequireCafeStaffOrOwnerOrAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignDriverCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newAssignFixture()

	o := orderIn(t, order.Accepted, nil)
	by := newActor(t, actor.Staff)
	driverID := kernel.NewUUID()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), by).Return(nil).Once()
	f.ledger.On("LockDriver", ctx, driverID).Return(nil).Once()
	f.ledger.On("Latest", ctx, driverID).Return(locationRecord(t, driverID, 0, 0, driver.Idle), nil).Once()
	f.ledger.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	cmd, err := commands.NewAssignDriverCommand(o.ID(), by, &driverID)
	require.NoError(t, err)

	got, err := f.handler.Handle(ctx, cmd)
	require.EqualError(t, err, "commit error")
	assert.Nil(t, got)
}

func TestAssignDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewAssignDriverCommandHandler(factory, new(MockAuthorizer), new(MockCafeRepository), fixedClock())

	_, err := handler.Handle(t.Context(), commands.AssignDriverCommand{})

	require.ErrorIs(t, err, commands.ErrAssignDriverCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
