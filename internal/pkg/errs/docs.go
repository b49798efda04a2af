// Package errs provides standardized error types for the footprint fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or not allowed
//   - ValueIsOutOfRangeError: a value falls outside its permitted bounds
//   - ObjectNotFoundError: a referenced object does not exist in the store
//   - ConflictError: an object changed concurrently between read and write
//   - AlreadyExistsError: a uniqueness constraint rejected a new object
//   - PersistenceError: the underlying store failed unexpectedly
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is / errors.As support
//
// The first three types are validation errors: IsValidation reports whether an
// error belongs to that class, which lets transport layers classify failures
// without enumerating every type.
package errs
