// Package orderrepo persists the Order aggregate: one row in orders and one
// row in order_products per product line.
package orderrepo

import (
	"time"

	"deliverus/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is not stored; it is derived from the
// lifecycle timestamps, whose ordering is enforced by check constraints.
type OrderDTO struct {
	ID            int64            `gorm:"primaryKey;autoIncrement"`
	UserID        int64            `gorm:"not null;index"`
	RestaurantID  int64            `gorm:"not null;index"`
	Address       string           `gorm:"type:varchar(255);not null"`
	Price         decimal.Decimal  `gorm:"type:numeric(10,2);not null;check:chk_orders_price,price >= 0"`
	ShippingCosts decimal.Decimal  `gorm:"type:numeric(10,2);not null;check:chk_orders_shipping_costs,shipping_costs >= 0"`
	CreatedAt     time.Time        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime:false"`
	StartedAt     *time.Time
	SentAt        *time.Time       `gorm:"check:chk_orders_sent_after_started,sent_at IS NULL OR started_at IS NOT NULL"`
	DeliveredAt   *time.Time       `gorm:"check:chk_orders_delivered_after_sent,delivered_at IS NULL OR sent_at IS NOT NULL"`
	Lines         []ProductLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ProductLineDTO is the order_products row. Position keeps the request order
// of the lines.
type ProductLineDTO struct {
	OrderID    int64           `gorm:"primaryKey"`
	ProductID  int64           `gorm:"primaryKey;index"`
	Position   int             `gorm:"not null"`
	Quantity   int             `gorm:"not null;check:chk_order_products_quantity,quantity > 0"`
	UnityPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_order_products_unity_price,unity_price >= 0"`
}

func (ProductLineDTO) TableName() string {
	return "order_products"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID(),
		UserID:        o.UserID(),
		RestaurantID:  o.RestaurantID(),
		Address:       o.Address(),
		Price:         o.Price(),
		ShippingCosts: o.ShippingCosts(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		StartedAt:     o.StartedAt(),
		SentAt:        o.SentAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

func linesFromDomain(orderID int64, lines []order.ProductLine) []ProductLineDTO {
	dtos := make([]ProductLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = ProductLineDTO{
			OrderID:    orderID,
			ProductID:  l.ProductID(),
			Position:   i,
			Quantity:   l.Quantity(),
			UnityPrice: l.UnityPrice(),
		}
	}
	return dtos
}

// toDomain rebuilds the aggregate. dto.Lines must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]order.ProductLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := order.NewProductLine(l.ProductID, l.Quantity, l.UnityPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            dto.ID,
		UserID:        dto.UserID,
		RestaurantID:  dto.RestaurantID,
		Address:       dto.Address,
		Lines:         lines,
		Price:         dto.Price,
		ShippingCosts: dto.ShippingCosts,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		StartedAt:     dto.StartedAt,
		SentAt:        dto.SentAt,
		DeliveredAt:   dto.DeliveredAt,
	})
}
