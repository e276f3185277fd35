package commands

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/domain/services"

	"go.uber.org/zap"
)

// UpdateOrderCommandHandler edits a pending order. Unit prices are taken from
// the catalog again at update time and the shipping rule is reapplied; the old
// lines are removed and the new ones inserted in the same transaction.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	logger     *zap.Logger
	access     services.OrderAccessGuard
	rules      OrderRules
	opts       handlerOptions
}

func NewUpdateOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	logger *zap.Logger,
	opts ...Option,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With(zap.String("command", "update_order")),
		access:     services.NewOrderAccessGuard(),
		opts:       newHandlerOptions(opts),
	}
}

// Handle locks the order, checks ownership and the pending state, then
// reprices and saves it.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	var (
		updated *order.Order
		rest    *restaurant.Restaurant
	)

	uow := h.uowFactory.Create()
	err := inTransaction(ctx, h.opts.txTimeout, uow, func(ctx context.Context) error {
		var err error
		updated, err = uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = h.access.CanActAsCustomer(cmd.Actor(), updated); err != nil {
			return err
		}

		if err = updated.Status().ValidateEditable(); err != nil {
			return err
		}

		rest, err = uow.RestaurantRepository().Get(ctx, updated.RestaurantID())
		if err != nil {
			return err
		}

		lines, err := h.rules.PricedLines(ctx, uow.ProductRepository(), updated.RestaurantID(), cmd.Products())
		if err != nil {
			return err
		}

		if err = updated.Revise(cmd.Address(), lines, rest.ShippingCosts(), h.clock.Now()); err != nil {
			return err
		}

		return uow.OrderRepository().Update(ctx, updated)
	})
	if err != nil {
		logFailure(h.logger, "order was not updated", err, zap.Int64("order_id", cmd.OrderID()))
		return OrderResult{}, err
	}

	h.logger.Info("order updated", append(orderFields(updated), zap.String("price", updated.Price().String()))...)
	return OrderResult{Order: updated, Restaurant: rest}, nil
}
