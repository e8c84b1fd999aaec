// Package errs provides standardized error types for the order management backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines the full error taxonomy of the order lifecycle engine:
//   - ObjectNotFoundError: the order/restaurant/payment does not exist
//   - ForbiddenError: the acting owner does not control the target resource
//   - InvalidTransitionError: illegal status edge or attribute written outside its window
//   - ConflictError: an optimistic status update lost a race
//   - ExternalServiceError: a best-effort collaborator call (refund, notification) failed
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError: malformed input
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Callers never switch on error strings: the bulk action processor and the HTTP
// adapter both classify failures with errors.Is against the sentinels.
package errs
