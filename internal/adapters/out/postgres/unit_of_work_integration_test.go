package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "deliverus/internal/adapters/out/postgres"
	"deliverus/internal/adapters/out/postgres/pgtest"
	"deliverus/internal/adapters/out/postgres/restaurantrepo"
	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

// steppingClock advances by step on every read.
type steppingClock struct {
	mu   sync.Mutex
	at   time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.at
	c.at = c.at.Add(c.step)
	return now
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	factory    *postgres_adapter.GormUnitOfWorkFactory
	restaurant restaurantrepo.RestaurantDTO
	product    restaurantrepo.ProductDTO
	customer   kernel.Actor
	owner      kernel.Actor
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.customer = kernel.MustNewActor(10, kernel.RoleCustomer)
	suite.owner = kernel.MustNewActor(20, kernel.RoleOwner)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)

	var err error
	suite.restaurant, err = pgtest.SeedRestaurant(suite.db, suite.owner.UserID(), "3.50")
	suite.Require().NoError(err)
	suite.product, err = pgtest.SeedProduct(suite.db, suite.restaurant.ID, "4.00", true)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) createHandler(clock kernel.Clock) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(uowFactory(func() commands.UoW {
		return suite.factory.Create()
	}), clock, zap.NewNop())
}

func (suite *UnitOfWorkIntegrationTestSuite) transitionHandler(clock kernel.Clock) commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(orderUoWFactory(func() commands.OrderUoW {
		return suite.factory.Create()
	}), clock, services.MeanServiceTime{}, zap.NewNop())
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(clock kernel.Clock) *order.Order {
	cmd, err := commands.NewCreateOrderCommand(suite.customer, suite.restaurant.ID, "Calle Falsa 123",
		[]commands.ProductLineInput{{ProductID: suite.product.ID, Quantity: 2}})
	suite.Require().NoError(err)

	handler := suite.createHandler(clock)
	result, err := handler.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return result.Order
}

func (suite *UnitOfWorkIntegrationTestSuite) countOrders() int64 {
	var n int64
	suite.Require().NoError(suite.db.Table("orders").Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	line, err := order.NewProductLine(suite.product.ID, 1, decimal.RequireFromString("4.00"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(10, suite.restaurant.ID, "addr", []order.ProductLine{line},
		decimal.RequireFromString("3.50"), time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Zero(suite.countOrders())
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_FailedRuleWritesNothing() {
	cmd, err := commands.NewCreateOrderCommand(suite.customer, suite.restaurant.ID, "Calle Falsa 123",
		[]commands.ProductLineInput{{ProductID: suite.product.ID, Quantity: 1}, {ProductID: 999, Quantity: 1}})
	suite.Require().NoError(err)

	handler := suite.createHandler(kernel.FixedClock{At: time.Now()})
	_, err = handler.Handle(context.Background(), cmd)

	var verr *errs.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("products[1].productId", verr.Violations[0].Field)
	suite.Zero(suite.countOrders())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentConfirm_OnlyOneWins() {
	clock := kernel.FixedClock{At: time.Now().UTC()}
	o := suite.createOrder(clock)
	handler := suite.transitionHandler(clock)

	const attempts = 5
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewConfirmOrderCommand(suite.owner, o.ID())
			if err != nil {
				results <- err
				return
			}
			_, err = handler.Handle(context.Background(), cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicts int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(attempts-1, conflicts)

	stored, err := suite.factory.Create().OrderRepository().Get(context.Background(), o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProcess, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliverRecomputesServiceTime() {
	ctx := context.Background()
	clock := &steppingClock{at: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), step: 15 * time.Minute}
	o := suite.createOrder(clock)
	handler := suite.transitionHandler(clock)

	for _, build := range []func(kernel.Actor, int64) (commands.TransitionOrderCommand, error){
		commands.NewConfirmOrderCommand,
		commands.NewSendOrderCommand,
		commands.NewDeliverOrderCommand,
	} {
		cmd, err := build(suite.owner, o.ID())
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, cmd)
		suite.Require().NoError(err)
	}

	rest, err := suite.factory.Create().RestaurantRepository().Get(ctx, suite.restaurant.ID)
	suite.Require().NoError(err)
	suite.Require().True(rest.AverageServiceMinutes().Valid)
	suite.True(decimal.NewFromInt(45).Equal(rest.AverageServiceMinutes().Decimal),
		rest.AverageServiceMinutes().Decimal.String())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
