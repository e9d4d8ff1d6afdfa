package manager

import (
	"errors"

	"modelrouter/internal/backend"
	"modelrouter/internal/chat"
)

// invalidRequestError signals a malformed chat or route request (400).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return "invalid request: " + e.msg }

// ErrInvalidRequest constructs an invalidRequestError.
func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err indicates a malformed request.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e)
}

// IsModelNotFound reports whether the error indicates a model id missing from the catalog.
func IsModelNotFound(err error) bool { return errors.Is(err, chat.ErrModelNotFound) }

// IsUpstream reports whether err came from a backend: a non-2xx status, a transport
// failure or an empty completion. The HTTP layer maps these to 502/504.
func IsUpstream(err error) bool {
	if _, ok := backend.IsStatus(err); ok {
		return true
	}
	return backend.IsTransport(err) || errors.Is(err, chat.ErrEmptyResponse)
}

// UpstreamStatus returns the backend HTTP status carried by err, if any.
func UpstreamStatus(err error) (int, bool) { return backend.IsStatus(err) }
