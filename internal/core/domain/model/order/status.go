package order

import (
	"fmt"
	"strings"
	"time"

	"deliverus/internal/pkg/errs"
)

// Status is the lifecycle state of an order, derived from its timestamps.
//
// State transitions:
//
//	Pending ──confirm──> InProcess ──send──> Sent ──deliver──> Delivered
//
// Address and product-line edits, and deletion, are allowed only in Pending.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending orders have not been confirmed by the restaurant (startedAt is null).
	Pending

	// InProcess orders were confirmed and are being prepared (sentAt is null).
	InProcess

	// Sent orders left the restaurant (deliveredAt is null).
	Sent

	// Delivered orders reached the customer. This is a final state.
	Delivered
)

// ErrTransition is the reason reported for every illegal lifecycle transition.
const ErrTransition = "order cannot be transitioned"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in_process",
		Sent:      "sent",
		Delivered: "delivered",
	}
}

// StatusOf derives the status from the lifecycle timestamps. Timestamps that
// break the startedAt <- sentAt <- deliveredAt chain yield Unknown.
func StatusOf(startedAt, sentAt, deliveredAt *time.Time) Status {
	switch {
	case deliveredAt != nil:
		if sentAt == nil || startedAt == nil {
			return Unknown
		}
		return Delivered
	case sentAt != nil:
		if startedAt == nil {
			return Unknown
		}
		return Sent
	case startedAt != nil:
		return InProcess
	default:
		return Pending
	}
}

// ParseStatus reads a status filter value. "in process" is accepted as an
// alias of "in_process".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the four lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Confirm transitions Pending to InProcess.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return Unknown, transitionError("confirm", s)
	}
	return InProcess, nil
}

// Send transitions InProcess to Sent.
func (s Status) Send() (Status, error) {
	if s != InProcess {
		return Unknown, transitionError("send", s)
	}
	return Sent, nil
}

// Deliver transitions Sent to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Sent {
		return Unknown, transitionError("deliver", s)
	}
	return Delivered, nil
}

// ValidateEditable allows structural edits and deletion only while Pending.
func (s Status) ValidateEditable() error {
	if s != Pending {
		return errs.NewConflictErrorWithCause(
			"order is not pending",
			fmt.Errorf("%s orders cannot be modified", s),
		)
	}
	return nil
}

func transitionError(transition string, from Status) error {
	return errs.NewConflictErrorWithCause(
		ErrTransition,
		fmt.Errorf("%s is not allowed from %s", transition, from),
	)
}
