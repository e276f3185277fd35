package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand cancels a pending order.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(actor kernel.Actor, orderID int64) (DeleteOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	if orderID <= 0 {
		return DeleteOrderCommand{}, errs.NewFieldValidationError("orderId", "orderId must be a positive integer")
	}

	return DeleteOrderCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DeleteOrderCommand) OrderID() int64 {
	return c.orderID
}
