package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"

	"go.uber.org/zap"
)

// OrderResult is the hydrated order returned by every command that changes
// one: the aggregate with its lines and the restaurant it belongs to.
type OrderResult struct {
	Order      *order.Order
	Restaurant *restaurant.Restaurant
}

func orderFields(o *order.Order) []zap.Field {
	return []zap.Field{
		zap.Int64("order_id", o.ID()),
		zap.Int64("restaurant_id", o.RestaurantID()),
		zap.Int64("user_id", o.UserID()),
	}
}

// logFailure logs storage failures at error level. Business rejections are the
// caller's to report and are not logged here.
func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	if errors.Is(err, errs.ErrPersistence) {
		logger.Error(msg, append(fields, zap.Error(err))...)
	}
}
