package queries

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/services"
	"deliverus/internal/core/ports"
	"deliverus/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// analyticsDayLayout formats the calendar day that keys cached snapshots.
const analyticsDayLayout = "2006-01-02"

// GetRestaurantAnalyticsQueryHandler computes a restaurant's daily figures.
// Days are the calendar days of the clock's location.
//
// The owner check always reads the database. Only the aggregate is cached,
// and a failing cache is logged and bypassed.
type GetRestaurantAnalyticsQueryHandler struct {
	db     *gorm.DB
	cache  ports.AnalyticsCache
	clock  kernel.Clock
	logger *zap.Logger
	access services.OrderAccessGuard
}

// NewGetRestaurantAnalyticsQueryHandler builds the handler. cache may be nil.
func NewGetRestaurantAnalyticsQueryHandler(
	db *gorm.DB,
	cache ports.AnalyticsCache,
	clock kernel.Clock,
	logger *zap.Logger,
) GetRestaurantAnalyticsQueryHandler {
	return GetRestaurantAnalyticsQueryHandler{
		db:     db,
		cache:  cache,
		clock:  clock,
		logger: logger.With(zap.String("query", "restaurant_analytics")),
		access: services.NewOrderAccessGuard(),
	}
}

func (h GetRestaurantAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantAnalyticsQuery,
) (ports.RestaurantAnalytics, error) {
	if err := query.Validate(); err != nil {
		return ports.RestaurantAnalytics{}, err
	}

	ownerID, err := restaurantOwner(ctx, h.db, query.RestaurantID())
	if err != nil {
		return ports.RestaurantAnalytics{}, err
	}
	if err = h.access.CanActAsOwnerOf(query.Actor(), ownerID); err != nil {
		return ports.RestaurantAnalytics{}, err
	}

	today := kernel.StartOfDay(h.clock.Now())
	day := today.Format(analyticsDayLayout)

	if h.cache != nil {
		cached, ok, cacheErr := h.cache.Get(ctx, query.RestaurantID(), day)
		switch {
		case cacheErr != nil:
			h.logger.Warn("analytics cache read failed", zap.Int64("restaurant_id", query.RestaurantID()), zap.Error(cacheErr))
		case ok:
			return cached, nil
		}
	}

	snapshot, err := h.compute(ctx, query.RestaurantID(), today)
	if err != nil {
		return ports.RestaurantAnalytics{}, err
	}

	if h.cache != nil {
		if cacheErr := h.cache.Set(ctx, query.RestaurantID(), day, snapshot); cacheErr != nil {
			h.logger.Warn("analytics cache write failed", zap.Int64("restaurant_id", query.RestaurantID()), zap.Error(cacheErr))
		}
	}
	return snapshot, nil
}

func (h GetRestaurantAnalyticsQueryHandler) compute(
	ctx context.Context,
	restaurantID int64,
	today time.Time,
) (ports.RestaurantAnalytics, error) {
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	snapshot := ports.RestaurantAnalytics{RestaurantID: restaurantID}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE created_at >= @yesterday AND created_at < @today),
			COUNT(*) FILTER (WHERE started_at IS NULL),
			COUNT(*) FILTER (WHERE delivered_at >= @today AND delivered_at < @tomorrow),
			COALESCE(SUM(price) FILTER (WHERE created_at >= @today AND created_at < @tomorrow), 0)
		FROM orders
		WHERE restaurant_id = @restaurant
	`, map[string]any{
		"yesterday":  yesterday,
		"today":      today,
		"tomorrow":   tomorrow,
		"restaurant": restaurantID,
	}).Row().Scan(
		&snapshot.NumYesterdayOrders,
		&snapshot.NumPendingOrders,
		&snapshot.NumDeliveredTodayOrders,
		&snapshot.InvoicedToday,
	)
	if err != nil {
		return ports.RestaurantAnalytics{}, errs.NewPersistenceError("compute restaurant analytics", err)
	}
	return snapshot, nil
}
