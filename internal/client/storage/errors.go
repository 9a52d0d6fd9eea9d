package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrElementNotFound indicates that the element was not found
	ErrElementNotFound = errors.New("element not found")

	// ErrStateNotFound indicates that no synced state exists for the element
	ErrStateNotFound = errors.New("synced state not found")

	// ErrConflictNotFound indicates that the conflict record was not found
	ErrConflictNotFound = errors.New("conflict record not found")

	// ErrInvalidOperation indicates an append that violates the change log
	// coalescing rules (e.g. create for an already-pending clientID)
	ErrInvalidOperation = errors.New("invalid change log operation")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
