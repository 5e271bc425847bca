package identity

import "errors"

var (
	// ErrInvalidApplication indicates the identity service does not know
	// the configured application id.
	ErrInvalidApplication = errors.New("invalid application id")

	// ErrAuthenticationFailure indicates the identity service rejected the
	// caller's credentials.
	ErrAuthenticationFailure = errors.New("authentication failure")
)
