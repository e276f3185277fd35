// Package redis keeps restaurant analytics snapshots in redis for a short TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deliverus/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "deliverus:analytics"

// AnalyticsCache implements ports.AnalyticsCache with one JSON value per
// restaurant and day.
type AnalyticsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewAnalyticsCache(client redis.Cmdable, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{client: client, ttl: ttl}
}

func (c *AnalyticsCache) Get(ctx context.Context, restaurantID int64, day string) (ports.RestaurantAnalytics, bool, error) {
	raw, err := c.client.Get(ctx, key(restaurantID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RestaurantAnalytics{}, false, nil
	}
	if err != nil {
		return ports.RestaurantAnalytics{}, false, err
	}

	var snapshot ports.RestaurantAnalytics
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		return ports.RestaurantAnalytics{}, false, fmt.Errorf("decode analytics snapshot: %w", err)
	}
	return snapshot, true, nil
}

func (c *AnalyticsCache) Set(ctx context.Context, restaurantID int64, day string, snapshot ports.RestaurantAnalytics) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode analytics snapshot: %w", err)
	}
	return c.client.Set(ctx, key(restaurantID, day), raw, c.ttl).Err()
}

func key(restaurantID int64, day string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, restaurantID, day)
}
