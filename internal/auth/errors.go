package auth

import "errors"

var (
	// ErrEmailTaken reports a signup against an already-registered email.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrUserNotFound is returned by user lookups with no match.
	ErrUserNotFound = errors.New("auth: user not found")
)

// invalidCredentialsMsg is the single message for every login failure.
// Unknown user and wrong password are deliberately indistinguishable.
const invalidCredentialsMsg = "invalid email or password"
