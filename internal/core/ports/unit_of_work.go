package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it returns are
// bound to the transaction started by Begin. Domain events of aggregates
// stored through it are written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverLocationRepository() DriverLocationRepository
	CartRepository() CartRepository
	OutboxRepository() OutboxRepository
}
