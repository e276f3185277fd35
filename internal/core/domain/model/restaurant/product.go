package restaurant

import (
	"errors"
	"fmt"

	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a zero Product is used.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")

// Product is a catalog item of a single restaurant.
type Product struct {
	id           int64
	restaurantID int64
	name         string
	price        decimal.Decimal
	availability bool

	guard guard.ConstructorGuard
}

// RestoreProduct rebuilds a product from storage.
func RestoreProduct(id, restaurantID int64, name string, price decimal.Decimal, availability bool) (*Product, error) {
	p := &Product{
		guard:        guard.NewConstructorGuard(),
		name:         name,
		availability: availability,
	}

	var priceErr error
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	} else {
		p.price = price
	}

	if err := errors.Join(
		positive("product id", id, &p.id),
		positive("restaurant id", restaurantID, &p.restaurantID),
		priceErr,
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() int64 {
	return p.id
}

func (p *Product) RestaurantID() int64 {
	return p.restaurantID
}

func (p *Product) Name() string {
	return p.name
}

// Price is the current catalog price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// IsAvailable reports whether the product can be ordered.
func (p *Product) IsAvailable() bool {
	return p.availability
}

// BelongsTo reports whether the product is sold by restaurantID.
func (p *Product) BelongsTo(restaurantID int64) bool {
	return p.restaurantID == restaurantID
}
