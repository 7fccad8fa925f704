// Package errs provides standardized error types for the parcel ordering core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationFailedError: For when a state transition is gated on fields that are missing or wrong
//   - IllegalTransitionError: For when a state machine is asked to skip or reverse a step
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The three value errors additionally report themselves as ErrInvalidInput, so callers
// can classify malformed input with a single errors.Is check.
package errs
