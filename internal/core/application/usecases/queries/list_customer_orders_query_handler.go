package queries

import (
	"context"

	"deliverus/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler returns the customer's orders newest first,
// each with its lines and restaurant summary.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := services.RequireCustomer(query.Actor()); err != nil {
		return nil, err
	}

	records, err := loadOrders(ctx, h.db,
		"WHERE o.user_id = ? ORDER BY o.created_at DESC, o.id DESC", query.Actor().UserID())
	if err != nil {
		return nil, err
	}
	return views(records), nil
}
