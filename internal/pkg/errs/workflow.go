package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized                = errors.New("unauthorized")
	ErrInvalidTransition           = errors.New("invalid transition")
	ErrAssignmentPrecondition      = errors.New("assignment precondition failed")
	ErrDuplicatePendingApplication = errors.New("duplicate pending application")
	ErrAlreadyDecided              = errors.New("application already decided")
	ErrConflict                    = errors.New("concurrent modification")
	ErrNotEligible                 = errors.New("not eligible")
	ErrStaleRole                   = errors.New("stale role")
	ErrTransitionFailed            = errors.New("transition failed")
)

// UnauthorizedError reports that an actor lacks the role or ownership an action requires.
type UnauthorizedError struct {
	ActorID any
	Role    string
	Action  string
}

func NewUnauthorizedError(actorID any, role, action string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Role: role, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %v (%s) may not %s", ErrUnauthorized, e.ActorID, e.Role, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidTransitionError carries the current and the requested state so the
// caller can explain why the change was refused.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AssignmentPreconditionError reports an assignment that would break the baker hierarchy.
type AssignmentPreconditionError struct {
	Reason string
}

func NewAssignmentPreconditionError(reason string) *AssignmentPreconditionError {
	return &AssignmentPreconditionError{Reason: reason}
}

func (e *AssignmentPreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAssignmentPrecondition, e.Reason)
}

func (e *AssignmentPreconditionError) Unwrap() error {
	return ErrAssignmentPrecondition
}

// DuplicatePendingApplicationError reports a second pending application for one user.
type DuplicatePendingApplicationError struct {
	UserID any
}

func NewDuplicatePendingApplicationError(userID any) *DuplicatePendingApplicationError {
	return &DuplicatePendingApplicationError{UserID: userID}
}

func (e *DuplicatePendingApplicationError) Error() string {
	return fmt.Sprintf("%s: user %v", ErrDuplicatePendingApplication, e.UserID)
}

func (e *DuplicatePendingApplicationError) Unwrap() error {
	return ErrDuplicatePendingApplication
}

// AlreadyDecidedError reports a decision on an application that is no longer pending.
type AlreadyDecidedError struct {
	ApplicationID any
	Status        string
}

func NewAlreadyDecidedError(applicationID any, status string) *AlreadyDecidedError {
	return &AlreadyDecidedError{ApplicationID: applicationID, Status: status}
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("%s: application %v is %s", ErrAlreadyDecided, e.ApplicationID, e.Status)
}

func (e *AlreadyDecidedError) Unwrap() error {
	return ErrAlreadyDecided
}

// ConflictError reports a lost optimistic-concurrency race on an entity.
type ConflictError struct {
	Entity string
	ID     any
}

func NewConflictError(entity string, id any) *ConflictError {
	return &ConflictError{Entity: entity, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v was changed by another request", ErrConflict, e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotEligibleError reports a promotion request that does not meet its preconditions.
type NotEligibleError struct {
	Reason string
}

func NewNotEligibleError(reason string) *NotEligibleError {
	return &NotEligibleError{Reason: reason}
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotEligible, e.Reason)
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// StaleRoleError reports a request built against a role the user no longer holds.
type StaleRoleError struct {
	Claimed string
	Actual  string
}

func NewStaleRoleError(claimed, actual string) *StaleRoleError {
	return &StaleRoleError{Claimed: claimed, Actual: actual}
}

func (e *StaleRoleError) Error() string {
	return fmt.Sprintf("%s: claimed %s, actual %s", ErrStaleRole, e.Claimed, e.Actual)
}

func (e *StaleRoleError) Unwrap() error {
	return ErrStaleRole
}

// TransitionFailedError reports that a compound mutation could not be applied as a unit.
// Nothing was committed; the caller should retry the whole operation.
// It unwraps to both ErrTransitionFailed and the underlying cause.
type TransitionFailedError struct {
	Operation string
	Cause     error
}

func NewTransitionFailedError(operation string, cause error) *TransitionFailedError {
	return &TransitionFailedError{Operation: operation, Cause: cause}
}

func (e *TransitionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTransitionFailed, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransitionFailed, e.Operation)
}

func (e *TransitionFailedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransitionFailed}
	}
	return []error{ErrTransitionFailed, e.Cause}
}
