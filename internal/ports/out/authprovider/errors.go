package authprovider

import "errors"

var (
	// ErrInvalidCredentials indicates the email/password pair was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWeakPassword indicates the password failed the provider's policy.
	ErrWeakPassword = errors.New("password too weak")

	// ErrInvalidToken indicates the access token is missing, expired or revoked.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrUnavailable indicates the provider could not be reached or answered
	// with an unexpected status.
	ErrUnavailable = errors.New("auth provider unavailable")
)
