package commands

import (
	"context"
	"errors"
	"fmt"

	"deliverus/internal/core/domain/services"

	"go.uber.org/zap"
)

// RecomputeServiceTimesCommandHandler walks all restaurants, one transaction
// per restaurant, so a failure on one does not undo the others.
type RecomputeServiceTimesCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  services.ServiceTimeEstimator
	logger     *zap.Logger
	opts       handlerOptions
}

func NewRecomputeServiceTimesCommandHandler(
	uowFactory OrderUoWFactory,
	estimator services.ServiceTimeEstimator,
	logger *zap.Logger,
	opts ...Option,
) RecomputeServiceTimesCommandHandler {
	return RecomputeServiceTimesCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		logger:     logger.With(zap.String("command", "recompute_service_times")),
		opts:       newHandlerOptions(opts),
	}
}

// Handle returns the number of restaurants updated. Failures are joined and
// returned after every restaurant was attempted.
func (h *RecomputeServiceTimesCommandHandler) Handle(ctx context.Context, cmd RecomputeServiceTimesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().RestaurantRepository().ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		updated  int
		failures []error
	)
	for _, id := range ids {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		uow := h.uowFactory.Create()
		err = inTransaction(ctx, h.opts.txTimeout, uow, func(ctx context.Context) error {
			rest, err := uow.RestaurantRepository().GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return refreshServiceTime(ctx, uow.OrderRepository(), uow.RestaurantRepository(), h.estimator, rest)
		})
		if err != nil {
			h.logger.Warn("service time was not recomputed", zap.Int64("restaurant_id", id), zap.Error(err))
			failures = append(failures, fmt.Errorf("restaurant %d: %w", id, err))
			continue
		}
		updated++
	}

	h.logger.Info("service times recomputed", zap.Int("restaurants", updated), zap.Int("failures", len(failures)))
	return updated, errors.Join(failures...)
}
