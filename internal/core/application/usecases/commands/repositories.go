// Package commands contains the write use cases of the cafe delivery core.
// Every handler validates its command, runs in one unit of work and returns
// the business errors of the domain packages wrapped with detail.
package commands

import (
	"context"

	"cafedelivery/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverLocationRepoFactory interface {
		DriverLocationRepository() ports.DriverLocationRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// DriverLedgerUoW is used by commands that only append to the location ledger.
	DriverLedgerUoW interface {
		TxManager
		DriverLocationRepoFactory
	}

	DriverLedgerUoWFactory interface {
		Create() DriverLedgerUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans orders, the driver ledger and the cart, for commands that keep
	// order status and driver availability consistent.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	// ... uow.OrderRepository(), uow.DriverLocationRepository()
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverLocationRepoFactory
		CartRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
