// Package errs holds the error types shared by the domain, the use cases and
// the adapters.
//
// Every type unwraps to a sentinel (ErrObjectNotFound, ErrForbidden,
// ErrValueIsInvalid, ...), so callers classify errors with errors.Is while
// the message keeps the offending parameter and cause. The HTTP adapter maps
// ErrObjectNotFound to 404, ErrForbidden to 403 and the value errors to 400.
package errs
