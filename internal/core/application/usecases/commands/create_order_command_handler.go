package commands

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/domain/services"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler prices and stores a new order. The order row and
// every product line are committed together or not at all.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Order.ID(), result.Order.Price())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	logger     *zap.Logger
	rules      OrderRules
	opts       handlerOptions
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	logger *zap.Logger,
	opts ...Option,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With(zap.String("command", "create_order")),
		opts:       newHandlerOptions(opts),
	}
}

// Handle checks the actor, the restaurant and the catalog, in that order,
// then persists the order in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	if err := services.RequireCustomer(cmd.Actor()); err != nil {
		return OrderResult{}, err
	}

	var (
		created *order.Order
		rest    *restaurant.Restaurant
	)

	uow := h.uowFactory.Create()
	err := inTransaction(ctx, h.opts.txTimeout, uow, func(ctx context.Context) error {
		var err error
		rest, err = h.rules.ExistingRestaurant(ctx, uow.RestaurantRepository(), cmd.RestaurantID())
		if err != nil {
			return err
		}

		lines, err := h.rules.PricedLines(ctx, uow.ProductRepository(), cmd.RestaurantID(), cmd.Products())
		if err != nil {
			return err
		}

		created, err = order.NewOrder(
			cmd.Actor().UserID(),
			cmd.RestaurantID(),
			cmd.Address(),
			lines,
			rest.ShippingCosts(),
			h.clock.Now(),
		)
		if err != nil {
			return err
		}

		return uow.OrderRepository().Add(ctx, created)
	})
	if err != nil {
		logFailure(h.logger, "order was not created", err,
			zap.Int64("restaurant_id", cmd.RestaurantID()), zap.Int64("user_id", cmd.Actor().UserID()))
		return OrderResult{}, err
	}

	h.logger.Info("order created", append(orderFields(created), zap.String("price", created.Price().String()))...)
	return OrderResult{Order: created, Restaurant: rest}, nil
}
