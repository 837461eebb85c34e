// Package errs defines the error types written to API clients.
//
// Every failure leaves the service as an *HTTPError so clients always see
// the same envelope: success=false, a machine readable code, a message and
// optional field-level errors.
package errs
