package ports

import (
	"context"

	"deliverus/internal/core/domain/model/restaurant"
)

// RestaurantRepository reads restaurants and stores their service time.
type RestaurantRepository interface {
	// Get returns *errs.ObjectNotFoundError when the restaurant does not exist.
	Get(ctx context.Context, id int64) (*restaurant.Restaurant, error)

	// GetForUpdate is Get holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*restaurant.Restaurant, error)

	// UpdateServiceTime persists averageServiceMinutes.
	UpdateServiceTime(ctx context.Context, r *restaurant.Restaurant) error

	// ListIDs returns the ids of all restaurants in ascending order.
	ListIDs(ctx context.Context) ([]int64, error)
}

// ProductRepository reads the catalog.
type ProductRepository interface {
	// FindByIDs returns the products that exist among ids, in no particular
	// order. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]*restaurant.Product, error)
}
