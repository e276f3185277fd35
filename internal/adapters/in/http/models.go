package http

import (
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Error is the body of every failed request.
type Error struct {
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProductLine is a requested line: a product and how many of it.
type ProductLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	RestaurantID int64         `json:"restaurantId"`
	Address      string        `json:"address"`
	Products     []ProductLine `json:"products"`
}

// OrderUpdate is the body of PUT /orders/{orderId}. RestaurantID is only
// decoded so that an attempt to change it can be reported.
type OrderUpdate struct {
	RestaurantID *int64        `json:"restaurantId,omitempty"`
	Address      string        `json:"address"`
	Products     []ProductLine `json:"products"`
}

func (l ProductLine) input() commands.ProductLineInput {
	return commands.ProductLineInput{ProductID: l.ProductID, Quantity: l.Quantity}
}

func inputs(lines []ProductLine) []commands.ProductLineInput {
	out := make([]commands.ProductLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.input())
	}
	return out
}

// Order is a hydrated order. Money is rendered with two decimals.
type Order struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"userId"`
	RestaurantID  int64              `json:"restaurantId"`
	Address       string             `json:"address"`
	Price         string             `json:"price"`
	ShippingCosts string             `json:"shippingCosts"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	StartedAt     *time.Time         `json:"startedAt"`
	SentAt        *time.Time         `json:"sentAt"`
	DeliveredAt   *time.Time         `json:"deliveredAt"`
	Products      []OrderProductLine `json:"products"`
	Restaurant    Restaurant         `json:"restaurant"`
}

type OrderProductLine struct {
	ProductID  int64  `json:"productId"`
	Quantity   int    `json:"quantity"`
	UnityPrice string `json:"unityPrice"`
}

type Restaurant struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	ShippingCosts         string  `json:"shippingCosts"`
	AverageServiceMinutes *string `json:"averageServiceMinutes"`
}

// Analytics is the body of GET /restaurants/{restaurantId}/analytics.
type Analytics struct {
	RestaurantID            int64  `json:"restaurantId"`
	NumYesterdayOrders      int64  `json:"numYesterdayOrders"`
	NumPendingOrders        int64  `json:"numPendingOrders"`
	NumDeliveredTodayOrders int64  `json:"numDeliveredTodayOrders"`
	InvoicedToday           string `json:"invoicedToday"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toOrder(v queries.OrderView) Order {
	out := Order{
		ID:            v.ID,
		UserID:        v.UserID,
		RestaurantID:  v.RestaurantID,
		Address:       v.Address,
		Price:         money(v.Price),
		ShippingCosts: money(v.ShippingCosts),
		Status:        v.Status.String(),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		StartedAt:     v.StartedAt,
		SentAt:        v.SentAt,
		DeliveredAt:   v.DeliveredAt,
		Products:      make([]OrderProductLine, 0, len(v.Products)),
		Restaurant: Restaurant{
			ID:            v.Restaurant.ID,
			Name:          v.Restaurant.Name,
			ShippingCosts: money(v.Restaurant.ShippingCosts),
		},
	}
	if v.Restaurant.AverageServiceMinutes.Valid {
		minutes := money(v.Restaurant.AverageServiceMinutes.Decimal)
		out.Restaurant.AverageServiceMinutes = &minutes
	}
	for _, line := range v.Products {
		out.Products = append(out.Products, OrderProductLine{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnityPrice: money(line.UnityPrice),
		})
	}
	return out
}

func toOrders(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, toOrder(v))
	}
	return out
}

func fromResult(result commands.OrderResult) Order {
	return toOrder(queries.NewOrderView(result.Order, result.Restaurant))
}

func toAnalytics(a ports.RestaurantAnalytics) Analytics {
	return Analytics{
		RestaurantID:            a.RestaurantID,
		NumYesterdayOrders:      a.NumYesterdayOrders,
		NumPendingOrders:        a.NumPendingOrders,
		NumDeliveredTodayOrders: a.NumDeliveredTodayOrders,
		InvoicedToday:           money(a.InvoicedToday),
	}
}
