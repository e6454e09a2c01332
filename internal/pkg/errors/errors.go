package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingCredential marks the absence of a generation API key. It is a
	// normal condition: callers switch to the template engine instead of failing.
	ErrMissingCredential = errors.New("missing generation credential")
	// ErrLifecycleViolation marks a rejected content state transition.
	ErrLifecycleViolation = errors.New("lifecycle violation")
)

// TransportError wraps a failed HTTP exchange with an upstream service.
type TransportError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s transport: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s http %d: %s", e.Service, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
