package rest

import "errors"

// Sentinel errors for the wire layer. Use errors.Is() to check.
var (
	// ErrTransport means the request never produced a readable response.
	ErrTransport = errors.New("solr: transport failure")
	// ErrDecode means the response body is not valid JSON.
	ErrDecode = errors.New("solr: response is not valid JSON")
	// ErrServer means the response decoded but reported a failure, either
	// through a top-level "error" key or a non-2xx status.
	ErrServer = errors.New("solr: server reported an error")
)

// Error wraps an underlying error with the request that caused it.
type Error struct {
	Op  string // method and path, e.g. "GET admin/collections?action=LIST"
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
