package commands

import (
	"context"

	"deliverus/internal/core/domain/services"

	"go.uber.org/zap"
)

// DeleteOrderCommandHandler removes a pending order. Its product lines are
// removed by the same statement through the foreign key cascade.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *zap.Logger
	access     services.OrderAccessGuard
	opts       handlerOptions
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, logger *zap.Logger, opts ...Option) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("command", "delete_order")),
		access:     services.NewOrderAccessGuard(),
		opts:       newHandlerOptions(opts),
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	var fields []zap.Field
	err := inTransaction(ctx, h.opts.txTimeout, uow, func(ctx context.Context) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		fields = orderFields(o)

		if err = h.access.CanActAsCustomer(cmd.Actor(), o); err != nil {
			return err
		}

		if err = o.EnsureDeletable(); err != nil {
			return err
		}

		return uow.OrderRepository().Delete(ctx, o.ID())
	})
	if err != nil {
		logFailure(h.logger, "order was not deleted", err, zap.Int64("order_id", cmd.OrderID()))
		return err
	}

	h.logger.Info("order deleted", fields...)
	return nil
}
