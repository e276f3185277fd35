package cmd

import (
	"time"

	api "deliverus/internal/adapters/in/http"
	"deliverus/internal/adapters/out/postgres"
	redis_adapter "deliverus/internal/adapters/out/redis"
	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/core/ports"
	"deliverus/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	redis      *redis.Client
	uowFactory postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	estimator  services.ServiceTimeEstimator
	logger     *zap.Logger
}

// NewCompositionRoot wires the application. redisClient may be nil, which
// disables the analytics cache.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) (CompositionRoot, error) {
	estimator, err := services.NewServiceTimeEstimator(config.ServiceTimeStrategy, config.ServiceTimeEWMAAlpha)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		redis:      redisClient,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.NewSystemClock(config.Timezone),
		estimator:  estimator,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) txTimeout() commands.Option {
	return commands.WithTxTimeout(c.config.TxTimeout)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.clock, c.logger, c.txTimeout())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uow(), c.clock, c.logger, c.txTimeout())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoW(), c.logger, c.txTimeout())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoW(), c.clock, c.estimator, c.logger, c.txTimeout())
}

func (c *CompositionRoot) CreateRecomputeServiceTimesCommandHandler() commands.RecomputeServiceTimesCommandHandler {
	return commands.NewRecomputeServiceTimesCommandHandler(c.orderUoW(), c.estimator, c.logger, c.txTimeout())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRestaurantOrdersQueryHandler() queries.ListRestaurantOrdersQueryHandler {
	return queries.NewListRestaurantOrdersQueryHandler(c.gormDB, c.config.Timezone)
}

func (c *CompositionRoot) CreateGetRestaurantAnalyticsQueryHandler() queries.GetRestaurantAnalyticsQueryHandler {
	var cache ports.AnalyticsCache
	if c.redis != nil {
		cache = redis_adapter.NewAnalyticsCache(c.redis, c.config.AnalyticsCacheTTL)
	}
	return queries.NewGetRestaurantAnalyticsQueryHandler(c.gormDB, cache, c.clock, c.logger)
}

// CreateHandlers builds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHandlers() api.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	transitionOrder := c.CreateTransitionOrderCommandHandler()

	return api.Handlers{
		CreateOrder:          &createOrder,
		UpdateOrder:          &updateOrder,
		DeleteOrder:          &deleteOrder,
		TransitionOrder:      &transitionOrder,
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListCustomerOrders:   c.CreateListCustomerOrdersQueryHandler(),
		ListRestaurantOrders: c.CreateListRestaurantOrdersQueryHandler(),
		RestaurantAnalytics:  c.CreateGetRestaurantAnalyticsQueryHandler(),
	}
}

// CreateJobManager returns the scheduled jobs enabled by the configuration.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.config.ServiceTimeRecomputeSchedule != "" {
		recompute := c.CreateRecomputeServiceTimesCommandHandler()
		scheduled = append(scheduled, jobs.NewServiceTimeJob(
			c.config.ServiceTimeRecomputeSchedule, &recompute, 10*time.Minute, c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
