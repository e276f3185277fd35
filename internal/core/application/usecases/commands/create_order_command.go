package commands

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer placing an order against one restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, 1, "Calle Falsa 123", []ProductLineInput{
//	    {ProductID: 3, Quantity: 2},
//	})
//	if err != nil {
//	    return err // *errs.ValidationError listing every violation
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	restaurantID int64
	address      string
	products     []ProductLineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand runs the structural checks and reports all of their
// violations at once in an *errs.ValidationError.
func NewCreateOrderCommand(
	actor kernel.Actor,
	restaurantID int64,
	address string,
	products []ProductLineInput,
) (CreateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	verr := errs.NewValidationError()
	if restaurantID <= 0 {
		verr.Add("restaurantId", "restaurantId must be a positive integer")
	}
	validateAddress(verr, address)
	validateProductLines(verr, products)
	if err := verr.OrNil(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:        actor,
		restaurantID: restaurantID,
		address:      address,
		products:     append([]ProductLineInput(nil), products...),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) RestaurantID() int64 {
	return c.restaurantID
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

// Products returns the requested lines in request order.
func (c CreateOrderCommand) Products() []ProductLineInput {
	return append([]ProductLineInput(nil), c.products...)
}
