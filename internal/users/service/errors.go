package service

import "errors"

var (
	// ErrUserNotFound reports a login with no user record behind it.
	ErrUserNotFound = errors.New("service: user not found")

	// ErrBadCredential reports a password that does not verify. The
	// connection flag is left untouched.
	ErrBadCredential = errors.New("service: bad credential")

	// ErrNotConnected reports a logout attempted while the user is
	// already disconnected. That is a protocol violation by the caller,
	// not a benign no-op.
	ErrNotConnected = errors.New("service: user not connected")

	// ErrNotAuthenticated is the single unauthorized outcome of
	// Authenticate. Token rejection, unknown subject and a false
	// connection flag all collapse into it.
	ErrNotAuthenticated = errors.New("service: not authenticated")

	// ErrLoginTaken reports a provisioning attempt for an existing login.
	ErrLoginTaken = errors.New("service: login already taken")
)
