package session

import "errors"

var (
	// ErrMalformedInput signals input that does not follow the session protocol.
	ErrMalformedInput = errors.New("session: malformed input")
	// ErrInvalidConfig signals an invalid session configuration.
	ErrInvalidConfig = errors.New("session: invalid configuration")
)
