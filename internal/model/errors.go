package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// Referential integrity: a sport or creator reference that does not
	// resolve to an existing row
	ErrInvalidReference = errors.New("invalid reference")
)
