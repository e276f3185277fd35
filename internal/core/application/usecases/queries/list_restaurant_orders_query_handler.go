package queries

import (
	"context"
	"strings"
	"time"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/services"

	"gorm.io/gorm"
)

// statusPredicates select each derived status from the lifecycle timestamps.
var statusPredicates = map[order.Status]string{
	order.Pending:   "o.started_at IS NULL",
	order.InProcess: "o.started_at IS NOT NULL AND o.sent_at IS NULL",
	order.Sent:      "o.sent_at IS NOT NULL AND o.delivered_at IS NULL",
	order.Delivered: "o.delivered_at IS NOT NULL",
}

// ListRestaurantOrdersQueryHandler lists a restaurant's orders for its owner,
// newest first. Date filters are resolved in loc.
type ListRestaurantOrdersQueryHandler struct {
	db     *gorm.DB
	loc    *time.Location
	access services.OrderAccessGuard
}

func NewListRestaurantOrdersQueryHandler(db *gorm.DB, loc *time.Location) ListRestaurantOrdersQueryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return ListRestaurantOrdersQueryHandler{db: db, loc: loc, access: services.NewOrderAccessGuard()}
}

func (h ListRestaurantOrdersQueryHandler) Handle(ctx context.Context, query ListRestaurantOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ownerID, err := restaurantOwner(ctx, h.db, query.RestaurantID())
	if err != nil {
		return nil, err
	}
	if err = h.access.CanActAsOwnerOf(query.Actor(), ownerID); err != nil {
		return nil, err
	}

	conditions := []string{"o.restaurant_id = ?"}
	args := []any{query.RestaurantID()}

	if predicate, ok := statusPredicates[query.Status()]; ok {
		conditions = append(conditions, predicate)
	}
	if from, ok := query.CreatedFrom(h.loc); ok {
		conditions = append(conditions, "o.created_at >= ?")
		args = append(args, from)
	}
	if before, ok := query.CreatedBefore(h.loc); ok {
		conditions = append(conditions, "o.created_at < ?")
		args = append(args, before)
	}

	tail := "WHERE " + strings.Join(conditions, " AND ") + " ORDER BY o.created_at DESC, o.id DESC"
	records, err := loadOrders(ctx, h.db, tail, args...)
	if err != nil {
		return nil, err
	}
	return views(records), nil
}
