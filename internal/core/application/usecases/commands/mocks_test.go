package commands_test

import (
	"context"
	"iter"
	"time"

	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/driver"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingDriver(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverLocationRepository struct{ mock.Mock }

func (m *MockDriverLocationRepository) Add(ctx context.Context, r *driver.LocationRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDriverLocationRepository) Latest(ctx context.Context, driverID kernel.UUID) (*driver.LocationRecord, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.LocationRecord), args.Error(1)
}

func (m *MockDriverLocationRepository) AllIdle(ctx context.Context) iter.Seq2[*driver.LocationRecord, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[*driver.LocationRecord, error])
}

func (m *MockDriverLocationRepository) LockDriver(ctx context.Context, driverID kernel.UUID) error {
	args := m.Called(ctx, driverID)
	return args.Error(0)
}

func (m *MockDriverLocationRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) CurrentLines(ctx context.Context, customerID kernel.UUID) ([]ports.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CartLine), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msgs ...ports.OutboxMessage) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, cause string) error {
	args := m.Called(ctx, id, cause)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverLocationRepository() ports.DriverLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverLocationRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDriverLedgerUoWFactory struct{ mock.Mock }

func (m *MockDriverLedgerUoWFactory) Create() commands.DriverLedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverLedgerUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockAuthorizer struct{ mock.Mock }

func (m *MockAuthorizer) RequireCafeStaffOrOwnerOrAdmin(ctx context.Context, cafeID kernel.UUID, a actor.Actor) error {
	args := m.Called(ctx, cafeID, a)
	return args.Error(0)
}

func (m *MockAuthorizer) RequireRole(a actor.Actor, roles ...actor.Role) error {
	args := m.Called(a, roles)
	return args.Error(0)
}

type MockCafeRepository struct{ mock.Mock }

func (m *MockCafeRepository) Location(ctx context.Context, cafeID kernel.UUID) (kernel.Location, error) {
	args := m.Called(ctx, cafeID)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockProducer struct{ mock.Mock }

func (m *MockProducer) Produce(ctx context.Context, topic, key string, payload []byte) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

type MockDriverAssigner struct{ mock.Mock }

func (m *MockDriverAssigner) Handle(ctx context.Context, command commands.AssignDriverCommand) (*order.Order, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// uowWith wires repository accessors that handlers may call any number of times.
func uowWith(uow *MockUoW, orders *MockOrderRepository, ledger *MockDriverLocationRepository) {
	if orders != nil {
		uow.On("OrderRepository").Return(orders).Maybe()
	}
	if ledger != nil {
		uow.On("DriverLocationRepository").Return(ledger).Maybe()
	}
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
}
