package commands

import (
	"context"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/core/ports"

	"go.uber.org/zap"
)

// TransitionOrderCommandHandler applies confirm, send and deliver.
//
// The order row is locked before its state is read, so concurrent transitions
// on one order are serialized and the loser fails the status guard with a
// ConflictError. Deliver also locks the restaurant row and recomputes its
// average service time in the same transaction.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	estimator  services.ServiceTimeEstimator
	logger     *zap.Logger
	access     services.OrderAccessGuard
	opts       handlerOptions
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	estimator services.ServiceTimeEstimator,
	logger *zap.Logger,
	opts ...Option,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		estimator:  estimator,
		logger:     logger.With(zap.String("command", "transition_order")),
		access:     services.NewOrderAccessGuard(),
		opts:       newHandlerOptions(opts),
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	var (
		o    *order.Order
		rest *restaurant.Restaurant
	)

	uow := h.uowFactory.Create()
	err := inTransaction(ctx, h.opts.txTimeout, uow, func(ctx context.Context) error {
		var err error
		o, err = uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		restaurants := uow.RestaurantRepository()
		if cmd.Transition() == TransitionDeliver {
			rest, err = restaurants.GetForUpdate(ctx, o.RestaurantID())
		} else {
			rest, err = restaurants.Get(ctx, o.RestaurantID())
		}
		if err != nil {
			return err
		}

		if err = h.access.CanActAsOwner(cmd.Actor(), rest); err != nil {
			return err
		}

		now := h.clock.Now()
		switch cmd.Transition() {
		case TransitionConfirm:
			err = o.Confirm(now)
		case TransitionSend:
			err = o.Send(now)
		case TransitionDeliver:
			err = o.Deliver(now)
		}
		if err != nil {
			return err
		}

		if err = uow.OrderRepository().UpdateLifecycle(ctx, o); err != nil {
			return err
		}

		if cmd.Transition() == TransitionDeliver {
			return refreshServiceTime(ctx, uow.OrderRepository(), restaurants, h.estimator, rest)
		}
		return nil
	})
	if err != nil {
		logFailure(h.logger, "order transition failed", err,
			zap.Int64("order_id", cmd.OrderID()), zap.String("transition", string(cmd.Transition())))
		return OrderResult{}, err
	}

	h.logger.Info("order transitioned",
		append(orderFields(o), zap.String("transition", string(cmd.Transition())), zap.Stringer("status", o.Status()))...)
	return OrderResult{Order: o, Restaurant: rest}, nil
}

// refreshServiceTime recomputes the restaurant's average service time from
// its delivered orders and stores it. The restaurant row must be locked.
func refreshServiceTime(
	ctx context.Context,
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	estimator services.ServiceTimeEstimator,
	rest *restaurant.Restaurant,
) error {
	minutes, err := orders.DeliveredServiceMinutes(ctx, rest.ID())
	if err != nil {
		return err
	}

	if err = rest.UpdateAverageServiceMinutes(estimator.Estimate(minutes)); err != nil {
		return err
	}

	return restaurants.UpdateServiceTime(ctx, rest)
}
