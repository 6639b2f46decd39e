// Package postgres implements the unit of work over GORM.
//
// A GormUnitOfWork hands out repositories bound to its transaction and
// tracks the order aggregates stored through them. On Commit the domain
// events raised by those aggregates are written to the outbox in the same
// transaction, so a committed change and its events are never separated.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"cafedelivery/internal/adapters/out/postgres/cartrepo"
	"cafedelivery/internal/adapters/out/postgres/driverlocationrepo"
	"cafedelivery/internal/adapters/out/postgres/orderrepo"
	"cafedelivery/internal/adapters/out/postgres/outboxrepo"
	"cafedelivery/internal/core/domain/model/kernel"
	"cafedelivery/internal/core/domain/model/order"
	"cafedelivery/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	topic string
}

// NewGormUnitOfWorkFactory publishes order events to topic.
func NewGormUnitOfWorkFactory(db *gorm.DB, topic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, topic: topic}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topic:             f.topic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topic             string
	trackedAggregates []trackedAggregate
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes pending domain events to the outbox and commits. Events are
// cleared from the aggregates only once the commit succeeded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	msgs, err := uow.outboxMessages()
	if err != nil {
		return err
	}
	if err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, msgs...); err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, t := range uow.trackedAggregates {
		if o, ok := t.Aggregate.(*order.Order); ok {
			o.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DriverLocationRepository() ports.DriverLocationRepository {
	return driverlocationrepo.NewGormDriverLocationRepository(uow.conn())
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they store.
// An aggregate stored twice is tracked once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, t := range uow.trackedAggregates {
		if t.ID.IsEqual(id) {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// eventEnvelope is the payload written to the outbox and sent to the broker.
type eventEnvelope struct {
	Event       string `json:"event"`
	AggregateID string `json:"aggregate_id"`
	OccurredAt  string `json:"occurred_at"`
	Data        any    `json:"data"`
}

func (uow *GormUnitOfWork) outboxMessages() ([]ports.OutboxMessage, error) {
	var msgs []ports.OutboxMessage
	for _, t := range uow.trackedAggregates {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		for _, e := range o.DomainEvents() {
			payload, err := json.Marshal(eventEnvelope{
				Event:       e.EventName(),
				AggregateID: e.AggregateID().String(),
				OccurredAt:  e.OccurredAt().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				Data:        e,
			})
			if err != nil {
				return nil, fmt.Errorf("encode %s event: %w", e.EventName(), err)
			}
			msgs = append(msgs, ports.OutboxMessage{
				ID:        kernel.NewUUID(),
				Topic:     uow.topic,
				Key:       e.AggregateID().String(),
				EventName: e.EventName(),
				Payload:   payload,
				CreatedAt: e.OccurredAt().UTC(),
			})
		}
	}
	return msgs, nil
}
