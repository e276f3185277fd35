package services

import (
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/core/domain/model/order"
	"deliverus/internal/core/domain/model/restaurant"
	"deliverus/internal/pkg/errs"
)

// OrderAccessGuard decides whether an actor may act on an order.
//
// Business rules:
//   - customers act only on orders they placed
//   - owners act only on orders of restaurants they own
//   - lifecycle transitions and restaurant listings are owner-only
//   - creating, editing and deleting orders is customer-only
//
// Every denial is an *errs.ForbiddenError.
type OrderAccessGuard struct{}

func NewOrderAccessGuard() OrderAccessGuard {
	return OrderAccessGuard{}
}

// CanView allows the customer who placed the order and the owner of its restaurant.
func (g OrderAccessGuard) CanView(actor kernel.Actor, o *order.Order, r *restaurant.Restaurant) error {
	var restaurantOwnerID int64
	if r != nil && r.ID() == o.RestaurantID() {
		restaurantOwnerID = r.OwnerID()
	}
	return g.CanViewRecord(actor, o.UserID(), restaurantOwnerID)
}

// CanViewRecord is CanView for read models that only carry the ids of the
// customer and of the restaurant owner.
func (OrderAccessGuard) CanViewRecord(actor kernel.Actor, customerID, restaurantOwnerID int64) error {
	switch {
	case actor.IsCustomer() && customerID == actor.UserID():
		return nil
	case actor.IsOwner() && restaurantOwnerID != 0 && restaurantOwnerID == actor.UserID():
		return nil
	default:
		return errs.NewForbiddenError("order does not belong to you")
	}
}

// CanActAsCustomer allows only the customer who placed the order.
func (OrderAccessGuard) CanActAsCustomer(actor kernel.Actor, o *order.Order) error {
	if err := RequireCustomer(actor); err != nil {
		return err
	}
	if o.UserID() != actor.UserID() {
		return errs.NewForbiddenError("order does not belong to you")
	}
	return nil
}

// CanActAsOwner allows only the owner of the restaurant.
func (g OrderAccessGuard) CanActAsOwner(actor kernel.Actor, r *restaurant.Restaurant) error {
	return g.CanActAsOwnerOf(actor, r.OwnerID())
}

// CanActAsOwnerOf is CanActAsOwner for read models that only carry the
// owner id of the restaurant.
func (OrderAccessGuard) CanActAsOwnerOf(actor kernel.Actor, restaurantOwnerID int64) error {
	if !actor.IsOwner() {
		return errs.NewForbiddenError("only restaurant owners can perform this action")
	}
	if restaurantOwnerID != actor.UserID() {
		return errs.NewForbiddenError("restaurant does not belong to you")
	}
	return nil
}

// RequireCustomer rejects actors that are not customers.
func RequireCustomer(actor kernel.Actor) error {
	if !actor.IsCustomer() {
		return errs.NewForbiddenError("only customers can perform this action")
	}
	return nil
}
