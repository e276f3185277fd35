package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RestaurantAnalytics is a point-in-time snapshot of a restaurant's orders.
type RestaurantAnalytics struct {
	RestaurantID            int64           `json:"restaurantId"`
	NumYesterdayOrders      int64           `json:"numYesterdayOrders"`
	NumPendingOrders        int64           `json:"numPendingOrders"`
	NumDeliveredTodayOrders int64           `json:"numDeliveredTodayOrders"`
	InvoicedToday           decimal.Decimal `json:"invoicedToday"`
}

// AnalyticsCache keeps recent snapshots keyed by restaurant and calendar day.
// Snapshots may be stale for as long as the cache keeps them.
type AnalyticsCache interface {
	// Get reports false when nothing is cached for the key.
	Get(ctx context.Context, restaurantID int64, day string) (RestaurantAnalytics, bool, error)
	Set(ctx context.Context, restaurantID int64, day string, snapshot RestaurantAnalytics) error
}
