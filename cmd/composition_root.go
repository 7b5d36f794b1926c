package cmd

import (
	"context"

	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/cache"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	_ httpadapter.ScopeFactory  = (*CompositionRoot)(nil)
	_ httpadapter.HealthChecker = (*CompositionRoot)(nil)
)

// CompositionRoot wires adapters to use cases. It holds only process-wide
// collaborators; everything request-scoped is built by NewRequestScope.
type CompositionRoot struct {
	cfg        *Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      *cache.OrderLRU
	publisher  *kafka.OrderEventPublisher
	logger     *zap.Logger
}

func NewCompositionRoot(cfg *Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
	}

	if cfg.Cache.Size > 0 {
		lru, err := cache.NewOrderLRU(cfg.Cache.Size)
		if err != nil {
			return nil, errors.Wrap(err, "order cache")
		}
		root.cache = lru
	}

	opts := []postgres.FactoryOption{postgres.WithLogger(logger)}
	if len(cfg.Kafka.Brokers) > 0 {
		root.publisher = kafka.NewOrderEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderCreatedTopic, logger)
		opts = append(opts, postgres.WithEventPublisher(root.publisher))
	}
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, opts...)

	return root, nil
}

// NewRequestScope creates one unit of work and binds a repository and every
// handler of the request to it.
func (c *CompositionRoot) NewRequestScope() httpadapter.RequestScope {
	uow := c.uowFactory.Create()
	repo := orderrepo.NewGormOrderRepository(uow, uow)

	return httpadapter.RequestScope{
		Transactor:   uow,
		CreateOrder:  commands.NewCreateOrderCommandHandler(repo),
		GetAllOrders: queries.NewGetAllOrdersQueryHandler(repo),
		GetOrder:     queries.NewGetOrderQueryHandler(repo, c.orderCache()),
	}
}

// Ping checks that the database accepts connections.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NewJobManager returns the manager of every background job. Without a cache
// there is nothing to schedule.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.cache != nil {
		scheduled = append(scheduled, jobs.NewCacheWarmJob(
			c.newLatestOrdersHandler,
			c.cache,
			c.cfg.Cache.Size,
			c.cfg.Cache.WarmSchedule,
			c.logger,
		))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

// Close releases the event publisher. The database is closed by its owner.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

func (c *CompositionRoot) newLatestOrdersHandler() jobs.LatestOrdersHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetLatestOrdersQueryHandler(orderrepo.NewGormOrderRepository(uow, uow))
}

// orderCache keeps a nil *OrderLRU from becoming a non-nil interface.
func (c *CompositionRoot) orderCache() ports.OrderCache {
	if c.cache == nil {
		return nil
	}
	return c.cache
}
