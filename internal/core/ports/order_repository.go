// Package ports defines the contracts between the ordering core and the
// infrastructure that stores and caches its data.
package ports

import (
	"context"

	"deliverus/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the persistence contract for order aggregates and
// their product lines. An order and its lines are always written together.
type OrderRepository interface {
	// Add persists a new order with all its lines and assigns the generated id
	// to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the address, price and timestamps of an existing order
	// and replaces its product lines (remove all, then insert).
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateLifecycle persists only the lifecycle timestamps of an order.
	UpdateLifecycle(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order; its product lines go with it.
	Delete(ctx context.Context, id int64) error

	// Get retrieves an order with its product lines.
	// Returns *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get holding a row lock on the order until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// DeliveredServiceMinutes returns the minutes from creation to delivery of
	// every delivered order of the restaurant, oldest delivery first.
	DeliveredServiceMinutes(ctx context.Context, restaurantID int64) ([]decimal.Decimal, error)
}
