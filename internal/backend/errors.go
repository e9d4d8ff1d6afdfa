package backend

import (
	"errors"
	"fmt"
)

// StatusError is a non-2xx answer from a backend data call.
type StatusError struct {
	Op     string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Op, e.URL, e.Status, e.Body)
}

// StatusCode lets the HTTP layer surface the upstream status.
func (e *StatusError) StatusCode() int { return e.Status }

// TransportError wraps connection, DNS and timeout failures.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// IsStatus reports whether err carries a backend HTTP status and returns it.
func IsStatus(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
