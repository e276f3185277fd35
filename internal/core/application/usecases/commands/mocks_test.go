package commands_test

import (
	"context"
	"testing"
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	if args.Error(0) == nil && o.ID() == 0 {
		_ = o.AssignID(1000)
	}
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateLifecycle(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) DeliveredServiceMinutes(ctx context.Context, restaurantID int64) ([]decimal.Decimal, error) {
	args := m.Called(ctx, restaurantID)
	minutes, _ := args.Get(0).([]decimal.Decimal)
	return minutes, args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

func (m *MockRestaurantRepository) GetForUpdate(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

func (m *MockRestaurantRepository) UpdateServiceTime(ctx context.Context, r *restaurant.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRestaurantRepository) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]*restaurant.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*restaurant.Product)
	return products, args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.OrderUoW.
type MockUoW struct {
	mock.Mock
	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	products    *MockProductRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		products:    new(MockProductRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository { return m.restaurants }
func (m *MockUoW) ProductRepository() ports.ProductRepository       { return m.products }

// expectCommit sets up a transaction that commits.
func (m *MockUoW) expectCommit() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

// expectRollback sets up a transaction that must not commit.
func (m *MockUoW) expectRollback() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.restaurants.AssertExpectations(t)
	m.products.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

var (
	now      = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock    = kernel.FixedClock{At: now}
	customer = kernel.MustNewActor(10, kernel.RoleCustomer)
	owner    = kernel.MustNewActor(20, kernel.RoleOwner)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRestaurant(t *testing.T) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.RestoreRestaurant(1, owner.UserID(), "Casa Pepe", dec("3.50"), decimal.NullDecimal{})
	require.NoError(t, err)
	return r
}

func testProduct(t *testing.T, id, restaurantID int64, price string, available bool) *restaurant.Product {
	t.Helper()
	p, err := restaurant.RestoreProduct(id, restaurantID, "product", dec(price), available)
	require.NoError(t, err)
	return p
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewProductLine(1, 2, dec("4.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(customer.UserID(), 1, "Calle Falsa 123", []order.ProductLine{line}, dec("3.50"), now.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, o.AssignID(7))
	return o
}
