package service

import "errors"

// Workflow outcomes the HTTP layer translates into status codes. Anything
// else bubbling out of a service is a 500.
var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyVerified       = errors.New("email already verified")
	ErrTokenInvalidOrExpired = errors.New("token invalid or expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailNotVerified      = errors.New("email not verified")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrPasswordTooShort      = errors.New("password too short")
)
