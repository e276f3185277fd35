package commands

import (
	"errors"
	"fmt"

	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewConfirmOrderCommand, NewSendOrderCommand or NewDeliverOrderCommand",
)

// Transition names a lifecycle step applied by a restaurant owner.
type Transition string

const (
	TransitionConfirm Transition = "confirm"
	TransitionSend    Transition = "send"
	TransitionDeliver Transition = "deliver"
)

// TransitionOrderCommand moves an order one step through its lifecycle.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	orderID    int64
	transition Transition

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand moves a pending order to in process.
func NewConfirmOrderCommand(actor kernel.Actor, orderID int64) (TransitionOrderCommand, error) {
	return newTransitionOrderCommand(actor, orderID, TransitionConfirm)
}

// NewSendOrderCommand moves an in process order to sent.
func NewSendOrderCommand(actor kernel.Actor, orderID int64) (TransitionOrderCommand, error) {
	return newTransitionOrderCommand(actor, orderID, TransitionSend)
}

// NewDeliverOrderCommand moves a sent order to delivered.
func NewDeliverOrderCommand(actor kernel.Actor, orderID int64) (TransitionOrderCommand, error) {
	return newTransitionOrderCommand(actor, orderID, TransitionDeliver)
}

func newTransitionOrderCommand(actor kernel.Actor, orderID int64, transition Transition) (TransitionOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	if orderID <= 0 {
		return TransitionOrderCommand{}, errs.NewFieldValidationError("orderId", "orderId must be a positive integer")
	}

	return TransitionOrderCommand{
		actor:      actor,
		orderID:    orderID,
		transition: transition,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	if err := c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed); err != nil {
		return err
	}
	switch c.transition {
	case TransitionConfirm, TransitionSend, TransitionDeliver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is unknown", c.transition))
	}
}

func (c TransitionOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c TransitionOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c TransitionOrderCommand) Transition() Transition {
	return c.transition
}
