package commands_test

import (
	"errors"
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
	"go.uber.org/zap"
)

func TestChangeOrderStatusCommandHandler_Handle_AcceptAssignsNearestDriver(t *testing.T) {
	ctx := t.Context()

	// Given a pending order, an idle driver 0.01° from the cafe and one 5° away
	o := orderIn(t, order.Pending, nil)
	staff := newActor(t, actor.Staff)
	nearID, farID := kernel.NewUUID(), kernel.NewUUID()
	near := locationRecord(t, nearID, 0.01, 0, driver.Idle)
	far := locationRecord(t, farID, 5, 0, driver.Idle)

	orders := new(MockOrderRepository)
	ledger := new(MockDriverLocationRepository)
	uow := new(MockUoW)
	uowWith(uow, orders, ledger)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()
	auth := new(MockAuthorizer)
	cafes := new(MockCafeRepository)

	var occupied *driver.LocationRecord
	uow.On("Begin", ctx).Return(nil).Twice()
	orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Twice()
	auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), staff).Return(nil).Twice()
	orders.On("Update", ctx, o).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	cafes.On("Location", ctx, o.CafeID()).Return(kernel.MustLocation(0, 0), nil).Once()
	ledger.On("AllIdle", ctx).Return(idleSeq(near, far)).Once()
	ledger.On("LockDriver", ctx, nearID).Return(nil).Once()
	ledger.On("Latest", ctx, nearID).Return(near, nil).Once()
	ledger.On("Add", ctx, mock.AnythingOfType("*driver.LocationRecord")).
		Run(func(args mock.Arguments) { occupied = args.Get(1).(*driver.LocationRecord) }).
		Return(nil).Once()

	assigner := commands.NewAssignDriverCommandHandler(factory, auth, cafes, fixedClock())
	handler := commands.NewChangeOrderStatusCommandHandler(factory, auth, fixedClock(), assigner, zap.NewNop())

	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), staff, order.Accepted)
	require.NoError(t, err)

	// When staff accepts the order
	got, err := handler.Handle(ctx, cmd)

	// Then the near driver is assigned and occupied
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, got.Status())
	assert.True(t, got.IsAssignedTo(nearID))
	require.NotNil(t, occupied)
	assert.True(t, occupied.DriverID().IsEqual(nearID))
	assert.Equal(t, driver.Occupied, occupied.Status())
	orders.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_AssignFailureDoesNotFailTransition(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *MockDriverAssigner)
	}{
		{
			name: "no idle driver",
			setup: func(a *MockDriverAssigner) {
				a.On("Handle", mock.Anything, mock.Anything).Return(nil, services.ErrNoIdleDriver).Once()
			},
		},
		{
			name: "panic",
			setup: func(a *MockDriverAssigner) {
				a.On("Handle", mock.Anything, mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			o := orderIn(t, order.Pending, nil)
			staff := newActor(t, actor.Staff)

			orders := new(MockOrderRepository)
			uow := new(MockUoW)
			uowWith(uow, orders, nil)
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()
			auth := new(MockAuthorizer)
			assigner := new(MockDriverAssigner)
			tt.setup(assigner)

			uow.On("Begin", ctx).Return(nil).Once()
			orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), staff).Return(nil).Once()
			orders.On("Update", ctx, o).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()

			handler := commands.NewChangeOrderStatusCommandHandler(factory, auth, fixedClock(), assigner, zap.NewNop())
			cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), staff, order.Accepted)
			require.NoError(t, err)

			got, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, order.Accepted, got.Status())
			assert.False(t, got.HasDriver())
			assigner.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_TerminalStatusReleasesDriver(t *testing.T) {
	for _, tc := range []struct {
		from order.Status
		to   order.Status
	}{
		{from: order.PickedUp, to: order.Delivered},
		{from: order.Accepted, to: order.Cancelled},
	} {
		t.Run(tc.to.String(), func(t *testing.T) {
			ctx := t.Context()

			driverID := kernel.NewUUID()
			o := orderIn(t, tc.from, &driverID)
			staff := newActor(t, actor.Staff)

			orders := new(MockOrderRepository)
			ledger := new(MockDriverLocationRepository)
			uow := new(MockUoW)
			uowWith(uow, orders, ledger)
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()
			auth := new(MockAuthorizer)
			assigner := new(MockDriverAssigner)

			var released *driver.LocationRecord
			uow.On("Begin", ctx).Return(nil).Once()
			orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), staff).Return(nil).Once()
			ledger.On("LockDriver", ctx, driverID).Return(nil).Once()
			ledger.On("Latest", ctx, driverID).Return(locationRecord(t, driverID, 3, 4, driver.Occupied), nil).Once()
			ledger.On("Add", ctx, mock.AnythingOfType("*driver.LocationRecord")).
				Run(func(args mock.Arguments) { released = args.Get(1).(*driver.LocationRecord) }).
				Return(nil).Once()
			orders.On("Update", ctx, o).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()

			handler := commands.NewChangeOrderStatusCommandHandler(factory, auth, fixedClock(), assigner, zap.NewNop())
			cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), staff, tc.to)
			require.NoError(t, err)

			got, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.to, got.Status())
			require.NotNil(t, released)
			assert.Equal(t, driver.Idle, released.Status())
			assert.Equal(t, 3.0, released.Location().Lat())
			assert.Equal(t, now, released.Timestamp())
			assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			ledger.AssertExpectations(t)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	o := orderIn(t, order.Pending, nil)
	staff := newActor(t, actor.Staff)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	uowWith(uow, orders, nil)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	auth := new(MockAuthorizer)

	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), staff).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory, auth, fixedClock(), new(MockDriverAssigner), zap.NewNop())
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), staff, order.Delivered)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Pending, o.Status())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()

	o := orderIn(t, order.Pending, nil)
	customer := newActor(t, actor.Customer)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	uowWith(uow, orders, nil)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	auth := new(MockAuthorizer)

	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	auth.On("RequireCafeStaffOrOwnerOrAdmin", ctx, o.CafeID(), customer).
		Return(errs.NewForbiddenError("change order status")).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory, auth, fixedClock(), new(MockDriverAssigner), zap.NewNop())
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), customer, order.Accepted)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Pending, o.Status())
}

func TestChangeOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory, new(MockAuthorizer), fixedClock(), new(MockDriverAssigner), zap.NewNop())
	cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), newActor(t, actor.Staff), order.Accepted)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)
	require.EqualError(t, err, "begin error")
}

func TestNewChangeOrderStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, actor.Actor{}, order.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, actor.ErrActorIsNotConstructed)
}
