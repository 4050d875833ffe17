package service

import "errors"

// Domain errors raised by the account service. Handlers map these onto
// HTTP statuses; nothing below the HTTP layer knows about status codes.
var (
	// ErrEmailRequired means the login request carried no email.
	ErrEmailRequired = errors.New("email must be provided")

	// ErrUserNotFound means no account matches the given email.
	ErrUserNotFound = errors.New("no user associated with email")

	// ErrInvalidCredentials means the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("password mismatch")

	// ErrUserNotActive means the account exists but has not been activated.
	ErrUserNotActive = errors.New("user not activated")

	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already taken")
)
