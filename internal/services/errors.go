package services

import "errors"

var (
	ErrMissingCredentials = errors.New("username and email are required")
	ErrInvalidCredentials = errors.New("invalid username or email")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again shortly")
	ErrValidation         = errors.New("invalid input")
	// ErrSaveFailed means a change is kept in memory but writing it to the
	// data files failed.
	ErrSaveFailed = errors.New("save failed")
)
