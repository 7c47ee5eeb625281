package identity

import "errors"

var (
	// ErrInvalidToken covers every definite verification failure. The
	// provider does not distinguish expired, malformed and revoked
	// tokens in a stable way, so neither do we.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrInvalidCredentials is returned by password sign-in when the
	// provider rejects the email/password combination.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned by sign-up when the address is already
	// registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrProviderUnavailable marks transport-level failures that are not
	// a definite denial. Callers may surface these as retryable.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
