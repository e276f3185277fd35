package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the address and the product lines of a
// pending order. The restaurant of an order never changes, so a request that
// names one is rejected.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	orderID  int64
	address  string
	products []ProductLineInput

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand runs the structural checks. restaurantID is the value
// sent by the caller, nil when absent.
func NewUpdateOrderCommand(
	actor kernel.Actor,
	orderID int64,
	restaurantID *int64,
	address string,
	products []ProductLineInput,
) (UpdateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	verr := errs.NewValidationError()
	if orderID <= 0 {
		verr.Add("orderId", "orderId must be a positive integer")
	}
	if restaurantID != nil {
		verr.Add("restaurantId", "the restaurant of an order cannot be changed")
	}
	validateAddress(verr, address)
	validateProductLines(verr, products)
	if err := verr.OrNil(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		actor:    actor,
		orderID:  orderID,
		address:  address,
		products: append([]ProductLineInput(nil), products...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c UpdateOrderCommand) Address() string {
	return c.address
}

func (c UpdateOrderCommand) Products() []ProductLineInput {
	return append([]ProductLineInput(nil), c.products...)
}
