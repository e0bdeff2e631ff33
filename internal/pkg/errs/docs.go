// Package errs provides standardized error types for the escrow service.
// Every error type pairs a sentinel value with a struct carrying details,
// so callers can match on the kind with errors.Is and still render a
// precise message.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: an object cannot be found by its identifier
//   - ObjectAlreadyExistsError: an identifier is already taken
//
// Each type has a constructor with and without a cause, an Error method and
// an Unwrap method returning the matching sentinel.
package errs
