// Package errs provides standardized error types for the bakery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Value errors raised while constructing domain objects
//     (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
//   - Workflow errors raised by the order and application state machines
//     (UnauthorizedError, InvalidTransitionError, TransitionFailedError, ...)
//
// ObjectNotFoundError is shared by both and is the "not found" member of the
// workflow taxonomy.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// All workflow errors are recoverable and meant to be rendered to the caller.
package errs
