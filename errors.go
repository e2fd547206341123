package solrdex

import (
	"errors"

	"github.com/kailas-cloud/solrdex/internal/rest"
)

// Sentinel errors re-exported from the wire layer.
// Use errors.Is() to check.
var (
	ErrTransport = rest.ErrTransport
	ErrDecode    = rest.ErrDecode
	ErrServer    = rest.ErrServer
)

// Sentinel errors raised by the SDK itself.
var (
	// ErrValidation marks a request rejected locally, before any network call.
	ErrValidation = errors.New("solrdex: validation failed")
	// ErrNotFound is returned when a named collection does not exist.
	ErrNotFound = errors.New("solrdex: collection not found")
	// ErrMalformedResponse means the server answered but the expected
	// shape (for example response.docs) is absent.
	ErrMalformedResponse = errors.New("solrdex: response missing expected shape")
	// ErrMissingQuery is returned by Query.Commit when no q was ever set.
	ErrMissingQuery = errors.New("solrdex: no query set")
	// ErrMissingValue is returned by the structured query compiler for a
	// field match without a value.
	ErrMissingValue = errors.New("solrdex: field match has no value")
	// ErrInvalidSyntax is returned by the structured query compiler for an
	// unrecognized node shape.
	ErrInvalidSyntax = errors.New("solrdex: unrecognized query node")
)

// Error wraps an underlying error with the SDK operation that produced it.
type Error struct {
	Op  string // dotted operation name, e.g. "docs.commit"
	Err error
}

func (e *Error) Error() string { return "solrdex: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
