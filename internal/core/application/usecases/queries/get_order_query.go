package queries

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order as seen by the customer who placed it or by
// the owner of its restaurant.
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, orderID int64) (GetOrderQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewFieldValidationError("orderId", "orderId must be a positive integer")
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}
