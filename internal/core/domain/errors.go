package domain

import "errors"

// Credential and token errors. ErrInvalidCredentials deliberately covers
// both "no such user" and "wrong password" so responses carry no
// account-enumeration signal.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// Report errors.
var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrInvalidTransition = errors.New("invalid status transition")
)
