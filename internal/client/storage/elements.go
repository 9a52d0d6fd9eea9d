package storage

import (
	"context"

	"github.com/loreforge/loreforge/internal/models"
)

//go:generate go tool moq -out elements_mock.go . ElementStorage

// ElementStorage holds the client's local copy of a project's elements,
// tombstones included.
type ElementStorage interface {
	// SaveElement stores or replaces an element.
	SaveElement(ctx context.Context, element *models.Element) error

	// GetElement retrieves an element by clientID, tombstones included.
	// Returns ErrElementNotFound if it doesn't exist.
	GetElement(ctx context.Context, projectID, clientID string) (*models.Element, error)

	// ListElements returns the project's visible (non-deleted) elements.
	ListElements(ctx context.Context, projectID string) ([]*models.Element, error)

	// ListAllElements returns every element including tombstones.
	// Used by sync-related bookkeeping.
	ListAllElements(ctx context.Context, projectID string) ([]*models.Element, error)
}
