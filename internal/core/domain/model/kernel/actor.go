package kernel

import (
	"errors"
	"fmt"

	"deliverus/internal/pkg/errs"
	"deliverus/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not built via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Role is the kind of user acting on the system.
type Role string

const (
	// RoleCustomer places and edits their own orders.
	RoleCustomer Role = "customer"
	// RoleOwner runs restaurants and advances the lifecycle of their orders.
	RoleOwner Role = "owner"
)

// ParseRole converts the wire representation of a role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleOwner:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct { //nolint:recvcheck //using for validation
	userID int64
	role   Role

	guard guard.ConstructorGuard
}

// NewActor validates and builds an Actor.
func NewActor(userID int64, role Role) (Actor, error) {
	a := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setUserID(userID),
		a.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// MustNewActor is NewActor for values known to be valid. It panics otherwise.
func MustNewActor(userID int64, role Role) Actor {
	a, err := NewActor(userID, role)
	if err != nil {
		panic(err)
	}
	return a
}

// Validate reports whether the actor was built by NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the acting user's id.
func (a Actor) UserID() int64 {
	return a.userID
}

// Role returns the acting user's role.
func (a Actor) Role() Role {
	return a.role
}

// IsCustomer reports whether the actor acts as a customer.
func (a Actor) IsCustomer() bool {
	return a.role == RoleCustomer
}

// IsOwner reports whether the actor acts as a restaurant owner.
func (a Actor) IsOwner() bool {
	return a.role == RoleOwner
}

func (a *Actor) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	a.userID = userID
	return nil
}

func (a *Actor) setRole(role Role) error {
	r, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	a.role = r
	return nil
}
