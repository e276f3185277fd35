// Package errs provides the typed errors shared by the order management service.
//
// Every error kind follows the same pattern:
//   - a sentinel error variable (e.g., ErrConflict) that errors.Is matches
//   - a struct type carrying the details
//   - constructor functions with and without cause
//   - an Error() method for formatting and Unwrap() returning the sentinel
//
// The kinds map onto how callers react to a failure:
//   - ValidationError: malformed input, reported as a list of field violations
//   - ConflictError: an illegal state transition or edit of a started order
//   - ForbiddenError: the acting user may not see or touch the target
//   - ObjectNotFoundError: the target does not exist
//   - PersistenceError: the store failed; the enclosing transaction was rolled back
//
// ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError are the
// primitive errors raised by domain constructors.
package errs
