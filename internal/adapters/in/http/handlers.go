package http

import (
	"context"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/ports"
)

// Use case ports of the server. The command and query handlers satisfy them;
// tests substitute mocks.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.OrderResult, error)
	}

	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (commands.OrderResult, error)
	}

	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (commands.OrderResult, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListCustomerOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListCustomerOrdersQuery) ([]queries.OrderView, error)
	}

	ListRestaurantOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListRestaurantOrdersQuery) ([]queries.OrderView, error)
	}

	RestaurantAnalyticsHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantAnalyticsQuery) (ports.RestaurantAnalytics, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	UpdateOrder          UpdateOrderHandler
	DeleteOrder          DeleteOrderHandler
	TransitionOrder      TransitionOrderHandler
	GetOrder             GetOrderHandler
	ListCustomerOrders   ListCustomerOrdersHandler
	ListRestaurantOrders ListRestaurantOrdersHandler
	RestaurantAnalytics  RestaurantAnalyticsHandler
}
