// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built with plain SQL over the ordering tables.
package queries

import (
	"context"
	"time"

	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is a fully hydrated order: its lines, its derived status and a
// summary of its restaurant.
type OrderView struct {
	ID            int64
	UserID        int64
	RestaurantID  int64
	Address       string
	Price         decimal.Decimal
	ShippingCosts decimal.Decimal
	Status        order.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	SentAt        *time.Time
	DeliveredAt   *time.Time
	Products      []ProductLineView
	Restaurant    RestaurantSummary
}

// ProductLineView is one line of an order with its snapshotted unit price.
type ProductLineView struct {
	ProductID  int64
	Quantity   int
	UnityPrice decimal.Decimal
}

// RestaurantSummary is the part of the restaurant shown next to its orders.
type RestaurantSummary struct {
	ID                    int64
	Name                  string
	ShippingCosts         decimal.Decimal
	AverageServiceMinutes decimal.NullDecimal
}

// NewOrderView renders aggregates returned by the command handlers the same
// way the queries render stored rows.
func NewOrderView(o *order.Order, r *restaurant.Restaurant) OrderView {
	view := OrderView{
		ID:            o.ID(),
		UserID:        o.UserID(),
		RestaurantID:  o.RestaurantID(),
		Address:       o.Address(),
		Price:         o.Price(),
		ShippingCosts: o.ShippingCosts(),
		Status:        o.Status(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		StartedAt:     o.StartedAt(),
		SentAt:        o.SentAt(),
		DeliveredAt:   o.DeliveredAt(),
		Products:      make([]ProductLineView, 0, len(o.Lines())),
	}
	for _, line := range o.Lines() {
		view.Products = append(view.Products, ProductLineView{
			ProductID:  line.ProductID(),
			Quantity:   line.Quantity(),
			UnityPrice: line.UnityPrice(),
		})
	}
	if r != nil {
		view.Restaurant = RestaurantSummary{
			ID:                    r.ID(),
			Name:                  r.Name(),
			ShippingCosts:         r.ShippingCosts(),
			AverageServiceMinutes: r.AverageServiceMinutes(),
		}
	}
	return view
}

// orderRecord is an OrderView plus the owner of its restaurant, which the
// handlers need for authorization but never expose.
type orderRecord struct {
	view    OrderView
	ownerID int64
}

const selectOrders = `
	SELECT
		o.id,
		o.user_id,
		o.restaurant_id,
		o.address,
		o.price,
		o.shipping_costs,
		o.created_at,
		o.updated_at,
		o.started_at,
		o.sent_at,
		o.delivered_at,
		r.user_id,
		r.name,
		r.shipping_costs,
		r.average_service_minutes
	FROM orders o
	JOIN restaurants r ON r.id = o.restaurant_id
`

// loadOrders runs selectOrders with the given WHERE and ORDER BY tail and
// attaches the product lines of every returned order.
func loadOrders(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]orderRecord, error) {
	rows, err := db.WithContext(ctx).Raw(selectOrders+tail, args...).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("select orders", err)
	}
	defer rows.Close()

	records := make([]orderRecord, 0)
	for rows.Next() {
		var rec orderRecord
		v := &rec.view
		err = rows.Scan(
			&v.ID,
			&v.UserID,
			&v.RestaurantID,
			&v.Address,
			&v.Price,
			&v.ShippingCosts,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.StartedAt,
			&v.SentAt,
			&v.DeliveredAt,
			&rec.ownerID,
			&v.Restaurant.Name,
			&v.Restaurant.ShippingCosts,
			&v.Restaurant.AverageServiceMinutes,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("scan order", err)
		}
		v.Restaurant.ID = v.RestaurantID
		v.Status = order.StatusOf(v.StartedAt, v.SentAt, v.DeliveredAt)
		v.Products = make([]ProductLineView, 0)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("read orders", err)
	}

	if err = attachLines(ctx, db, records); err != nil {
		return nil, err
	}
	return records, nil
}

func attachLines(ctx context.Context, db *gorm.DB, records []orderRecord) error {
	if len(records) == 0 {
		return nil
	}

	index := make(map[int64]int, len(records))
	ids := make([]int64, 0, len(records))
	for i, rec := range records {
		index[rec.view.ID] = i
		ids = append(ids, rec.view.ID)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, product_id, quantity, unity_price
		FROM order_products
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return errs.NewPersistenceError("select product lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			line    ProductLineView
		)
		if err = rows.Scan(&orderID, &line.ProductID, &line.Quantity, &line.UnityPrice); err != nil {
			return errs.NewPersistenceError("scan product line", err)
		}
		i := index[orderID]
		records[i].view.Products = append(records[i].view.Products, line)
	}
	if err = rows.Err(); err != nil {
		return errs.NewPersistenceError("read product lines", err)
	}
	return nil
}

func views(records []orderRecord) []OrderView {
	out := make([]OrderView, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.view)
	}
	return out
}
