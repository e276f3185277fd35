package restaurant

import (
	"errors"
	"fmt"

	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrRestaurantIsNotConstructed is returned when a zero Restaurant is used.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via RestoreRestaurant constructor")

// Restaurant is the seller of an order. Its owner is the only user allowed to
// move its orders through the lifecycle.
type Restaurant struct {
	id                    int64
	ownerID               int64
	name                  string
	shippingCosts         decimal.Decimal
	averageServiceMinutes decimal.NullDecimal

	guard guard.ConstructorGuard
}

// RestoreRestaurant rebuilds a restaurant from storage. averageServiceMinutes
// is null until the restaurant delivers its first order.
func RestoreRestaurant(
	id, ownerID int64,
	name string,
	shippingCosts decimal.Decimal,
	averageServiceMinutes decimal.NullDecimal,
) (*Restaurant, error) {
	r := &Restaurant{
		guard:                 guard.NewConstructorGuard(),
		name:                  name,
		averageServiceMinutes: averageServiceMinutes,
	}

	if err := errors.Join(
		positive("restaurant id", id, &r.id),
		positive("owner id", ownerID, &r.ownerID),
		r.setShippingCosts(shippingCosts),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Restaurant) Validate() error {
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() int64 {
	return r.id
}

// OwnerID is the user id of the restaurant's owner.
func (r *Restaurant) OwnerID() int64 {
	return r.ownerID
}

func (r *Restaurant) Name() string {
	return r.name
}

// ShippingCosts is the flat delivery fee charged below the free-shipping threshold.
func (r *Restaurant) ShippingCosts() decimal.Decimal {
	return r.shippingCosts
}

func (r *Restaurant) AverageServiceMinutes() decimal.NullDecimal {
	return r.averageServiceMinutes
}

// IsOwnedBy reports whether userID owns the restaurant.
func (r *Restaurant) IsOwnedBy(userID int64) bool {
	return r.ownerID == userID
}

// UpdateAverageServiceMinutes stores a recomputed service time. A null value
// clears it.
func (r *Restaurant) UpdateAverageServiceMinutes(minutes decimal.NullDecimal) error {
	if minutes.Valid && minutes.Decimal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("average service minutes",
			fmt.Errorf("%s is negative", minutes.Decimal))
	}
	r.averageServiceMinutes = minutes
	return nil
}

func (r *Restaurant) setShippingCosts(shippingCosts decimal.Decimal) error {
	if shippingCosts.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shipping costs", fmt.Errorf("%s is negative", shippingCosts))
	}
	r.shippingCosts = shippingCosts
	return nil
}

func positive(name string, value int64, dst *int64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", value))
	}
	*dst = value
	return nil
}
