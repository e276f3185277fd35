// Package pricing computes order totals from priced product lines and the
// restaurant's shipping policy. It has no I/O: unit prices are resolved by the
// caller from the catalog before Compute runs.
package pricing

import (
	"fmt"

	"deliverus/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// FreeShippingThreshold is the merchandise total above which shipping is free.
var FreeShippingThreshold = decimal.RequireFromString("10.00")

// Line is one priced product line. UnityPrice is invalid when the caller
// could not resolve a price.
type Line struct {
	ProductID  int64
	Quantity   int
	UnityPrice decimal.NullDecimal
}

// NewLine builds a line with a resolved unit price.
func NewLine(productID int64, quantity int, unityPrice decimal.Decimal) Line {
	return Line{ProductID: productID, Quantity: quantity, UnityPrice: decimal.NewNullDecimal(unityPrice)}
}

// Quote is the result of pricing an order.
type Quote struct {
	MerchandiseTotal decimal.Decimal
	ShippingCost     decimal.Decimal
	Total            decimal.Decimal
}

// Compute prices lines against restaurantShippingCost. Shipping is charged
// only when the merchandise total is at or below FreeShippingThreshold.
// Every invalid line is reported in the returned *errs.ValidationError.
func Compute(lines []Line, restaurantShippingCost decimal.Decimal) (Quote, error) {
	verr := errs.NewValidationError()
	if len(lines) == 0 {
		verr.Add("products", "at least one product line is required")
	}
	if restaurantShippingCost.IsNegative() {
		verr.Add("shippingCosts", "shipping costs cannot be negative")
	}

	merchandise := decimal.Zero
	for i, l := range lines {
		field := fmt.Sprintf("products[%d]", i)
		if l.Quantity <= 0 {
			verr.Add(field+".quantity", fmt.Sprintf("%d is not greater than 0", l.Quantity))
		}
		if !l.UnityPrice.Valid {
			verr.Add(field+".unityPrice", "unit price is missing")
			continue
		}
		if l.UnityPrice.Decimal.IsNegative() {
			verr.Add(field+".unityPrice", "unit price cannot be negative")
			continue
		}
		merchandise = merchandise.Add(l.UnityPrice.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	if err := verr.OrNil(); err != nil {
		return Quote{}, err
	}

	return quote(merchandise, restaurantShippingCost), nil
}

// ShippingFor returns the shipping cost applied to a merchandise total.
func ShippingFor(merchandiseTotal, restaurantShippingCost decimal.Decimal) decimal.Decimal {
	if merchandiseTotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return restaurantShippingCost
}

func quote(merchandise, restaurantShippingCost decimal.Decimal) Quote {
	shipping := ShippingFor(merchandise, restaurantShippingCost)
	return Quote{
		MerchandiseTotal: merchandise,
		ShippingCost:     shipping,
		Total:            merchandise.Add(shipping),
	}
}
