package storage

import (
	"context"
	"time"

	"github.com/loreforge/loreforge/internal/models"
)

// ElementStorage defines interface for element persistence. Elements are
// scoped per user and project; (user_id, project_id, client_id) is unique.
type ElementStorage interface {
	// GetElement retrieves an element by its client-assigned ID, tombstones
	// included. Returns ErrElementNotFound if it doesn't exist.
	GetElement(ctx context.Context, userID, projectID, clientID string) (*models.ServerElement, error)

	// InsertElement creates a new element row.
	// Returns ErrElementExists if the (project_id, client_id) pair is taken.
	InsertElement(ctx context.Context, element *models.ServerElement) error

	// UpdateElement replaces an element row if its stored version still
	// equals expectedVersion. Returns ErrVersionMismatch otherwise.
	UpdateElement(ctx context.Context, element *models.ServerElement, expectedVersion int64) error

	// ListChangedSince returns elements (tombstones included) modified
	// strictly after since, ordered by updated_at then client_id, paged by
	// limit/offset. Used by pull.
	ListChangedSince(ctx context.Context, userID, projectID string, since time.Time, limit, offset int) ([]*models.ServerElement, error)
}
