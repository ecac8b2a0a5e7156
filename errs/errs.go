// Package errs defines the error taxonomy shared by the client, the
// reconciler and the CLI. All three kinds are recoverable by user retry.
package errs

import "fmt"

// ValidationError reports a local precondition violation (missing
// credential, malformed date range, missing required visible answer).
// It is raised before any network call is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReconciliationError means the backend response shape violated the
// positional-alignment precondition. The save is reported as failed even
// though the backend may have persisted data; the local document must not
// be advanced to the unreconciled state.
type ReconciliationError struct {
	Msg string
}

func (e *ReconciliationError) Error() string {
	return e.Msg
}

func Reconciliation(format string, args ...any) *ReconciliationError {
	return &ReconciliationError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError wraps a network or backend failure. Detail carries the
// backend's structured error message when one was present.
type TransportError struct {
	Status int
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
