package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Card errors
	ErrCardNotFound = errors.New("card not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (username, or any card field)
	ErrDuplicate = errors.New("duplicate record")

	// ErrValidation is returned when a required field is missing or
	// exceeds its length limit
	ErrValidation = errors.New("validation failed")
)
