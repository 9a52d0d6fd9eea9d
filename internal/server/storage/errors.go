package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrElementNotFound indicates that element was not found
	ErrElementNotFound = errors.New("element not found")

	// ErrElementExists indicates a create for a (project_id, client_id)
	// pair that already has a row
	ErrElementExists = errors.New("element already exists")

	// ErrVersionMismatch indicates an optimistic update lost the race
	ErrVersionMismatch = errors.New("element version mismatch")
)
