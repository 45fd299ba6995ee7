package iris

import (
	"errors"
	"fmt"
)

// StatusError is returned when the service answers with a non-OK status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// TransportError is returned when the service could not be reached at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach %s: %s", e.Endpoint, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the error comes from the network layer.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// StatusCode returns the http status carried by the error, 0 if there is none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}
