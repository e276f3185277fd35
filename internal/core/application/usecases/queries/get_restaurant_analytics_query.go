package queries

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrGetRestaurantAnalyticsQueryIsNotConstructed = errors.New(
	"GetRestaurantAnalyticsQuery must be created via NewGetRestaurantAnalyticsQuery constructor",
)

// GetRestaurantAnalyticsQuery asks for today's figures of one restaurant.
type GetRestaurantAnalyticsQuery struct {
	actor        kernel.Actor
	restaurantID int64

	guard guard.ConstructorGuard
}

func NewGetRestaurantAnalyticsQuery(actor kernel.Actor, restaurantID int64) (GetRestaurantAnalyticsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetRestaurantAnalyticsQuery{}, err
	}
	if restaurantID <= 0 {
		return GetRestaurantAnalyticsQuery{}, errs.NewFieldValidationError("restaurantId", "restaurantId must be a positive integer")
	}

	return GetRestaurantAnalyticsQuery{
		actor:        actor,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetRestaurantAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantAnalyticsQueryIsNotConstructed)
}

func (q GetRestaurantAnalyticsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetRestaurantAnalyticsQuery) RestaurantID() int64 {
	return q.restaurantID
}
