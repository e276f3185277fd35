package queries

import (
	"context"

	"deliverus/internal/core/domain/services"
	"deliverus/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler returns a missing order as *errs.ObjectNotFoundError
// and someone else's order as *errs.ForbiddenError.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	access services.OrderAccessGuard
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, access: services.NewOrderAccessGuard()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	records, err := loadOrders(ctx, h.db, "WHERE o.id = ?", query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if len(records) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	rec := records[0]
	if err = h.access.CanViewRecord(query.Actor(), rec.view.UserID, rec.ownerID); err != nil {
		return OrderView{}, err
	}
	return rec.view, nil
}
