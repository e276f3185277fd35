package queries

import (
	"errors"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery lists the orders placed by the acting customer.
type ListCustomerOrdersQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(actor kernel.Actor) (ListCustomerOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) Actor() kernel.Actor {
	return q.actor
}
