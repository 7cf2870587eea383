package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──> Assigned ──> InProgress ──> Completed ──> ReadyForDelivery ──> Delivered
//	   │           │             │              │                │
//	   └───────────┴─────────────┴──────────────┴────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. String values are part of the wire
// contract and must not change.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Assigned
	InProgress
	Completed
	ReadyForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:          "pending",
		Assigned:         "assigned",
		InProgress:       "in_progress",
		Completed:        "completed",
		ReadyForDelivery: "ready_for_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// getForwardTransitions is the transition table: each open state maps to its
// only forward successor. Cancellation is handled separately because it is
// reachable from every open state.
func getForwardTransitions() map[Status]Status {
	return map[Status]Status{
		Pending:          Assigned,
		Assigned:         InProgress,
		InProgress:       Completed,
		Completed:        ReadyForDelivery,
		ReadyForDelivery: Delivered,
	}
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsFulfilled reports whether the baking work for the order is done. These are
// the states counted towards a junior baker's promotion.
func (s Status) IsFulfilled() bool {
	return s == Completed || s == ReadyForDelivery || s == Delivered
}

// FulfilledStatuses lists the states for which IsFulfilled is true.
func FulfilledStatuses() []Status {
	return []Status{Completed, ReadyForDelivery, Delivered}
}

// ActiveStatuses lists the states in which a baker is working on the order.
func ActiveStatuses() []Status {
	return []Status{Assigned, InProgress}
}

// Next returns the forward successor of s, or false for terminal states.
func (s Status) Next() (Status, bool) {
	next, ok := getForwardTransitions()[s]
	return next, ok
}

// ValidateTransition consults the transition table. The target must be the
// immediate successor of s, or Cancelled while s is still open.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	if target == Cancelled {
		return nil
	}
	if next, ok := s.Next(); ok && next == target {
		return nil
	}
	return errs.NewInvalidTransitionError(s.String(), target.String())
}
