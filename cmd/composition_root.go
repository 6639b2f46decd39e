package cmd

import (
	"time"

	httpadapter "cafedelivery/internal/adapters/in/http"
	"cafedelivery/internal/adapters/out/kafka"
	"cafedelivery/internal/adapters/out/postgres"
	"cafedelivery/internal/adapters/out/postgres/caferepo"
	"cafedelivery/internal/core/application/usecases/commands"
	"cafedelivery/internal/core/application/usecases/queries"
	"cafedelivery/internal/core/ports"
	"cafedelivery/internal/jobs"
	"cafedelivery/internal/pkg/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const kafkaWriteTimeout = 10 * time.Second

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cafes      *caferepo.GormCafeRepository
	producer   *kafka.Producer
	clock      ports.Clock
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	producer, err := kafka.NewProducer(cfg.KafkaBrokers(), kafkaWriteTimeout)
	if err != nil {
		return nil, err
	}
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.KafkaOrderChangedTopic),
		cafes:      caferepo.NewGormCafeRepository(gormDB),
		producer:   producer,
		clock:      clock.System{},
		logger:     logger,
	}, nil
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.producer.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.DriverLedgerUoWFactory {
	return FuncDriverLedgerUoWFactory(func() commands.DriverLedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.clock, c.cfg.OrderCancelGrace)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.cafes, c.cafes, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(), c.cafes, c.clock, c.CreateAssignDriverCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateDriverOrderStatusCommandHandler() commands.DriverOrderStatusCommandHandler {
	return commands.NewDriverOrderStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRecordDriverLocationCommandHandler() commands.RecordDriverLocationCommandHandler {
	return commands.NewRecordDriverLocationCommandHandler(c.ledgerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetDriverStatusCommandHandler() commands.SetDriverStatusCommandHandler {
	return commands.NewSetDriverStatusCommandHandler(c.ledgerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDispatchPendingOrdersCommandHandler() commands.DispatchPendingOrdersCommandHandler {
	return commands.NewDispatchPendingOrdersCommandHandler(c.orderUoWFactory(), c.CreateAssignDriverCommandHandler())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.producer, c.clock)
}

func (c *CompositionRoot) CreatePruneDriverLocationsCommandHandler() commands.PruneDriverLocationsCommandHandler {
	return commands.NewPruneDriverLocationsCommandHandler(c.ledgerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		DriverOrderStatus: c.CreateDriverOrderStatusCommandHandler(),
		RecordLocation:    c.CreateRecordDriverLocationCommandHandler(),
		SetDriverStatus:   c.CreateSetDriverStatusCommandHandler(),
		OrderSummary:      queries.NewGetOrderSummaryQueryHandler(c.gormDB),
		CafeOrders:        queries.NewGetCafeOrdersQueryHandler(c.gormDB),
		CustomerOrders:    queries.NewGetCustomerOrdersQueryHandler(c.gormDB),
		DriverOrders:      queries.NewGetDriverOrdersQueryHandler(c.gormDB),
		IdleDrivers:       queries.NewGetIdleDriversQueryHandler(c.gormDB),
	}, c.cafes)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchPendingOrdersCommandHandler(),
		c.CreateRelayOutboxCommandHandler(),
		c.CreatePruneDriverLocationsCommandHandler(),
		jobs.Config{
			DispatchBatchSize: c.cfg.DispatchBatchSize,
			RelayBatchSize:    c.cfg.OutboxBatchSize,
			LocationRetention: c.cfg.LocationRetention,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncDriverLedgerUoWFactory func() commands.DriverLedgerUoW

func (f FuncDriverLedgerUoWFactory) Create() commands.DriverLedgerUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
