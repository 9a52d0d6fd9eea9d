package storage

import (
	"context"

	"github.com/loreforge/loreforge/internal/models"
)

//go:generate go tool moq -out syncstate_mock.go . SyncStateStorage

// SyncStateStorage keeps the per-project sync bookkeeping: the cursor, the
// per-element fingerprint/version last known to match the server, persisted
// conflict records and per-element rejection notes. Mutated only by the sync
// coordinator during commit.
type SyncStateStorage interface {
	// GetCursor returns the project's sync cursor, or a zero cursor if the
	// project has never synced.
	GetCursor(ctx context.Context, projectID string) (*models.SyncCursor, error)

	// SaveCursor durably stores the cursor after a committed cycle step.
	SaveCursor(ctx context.Context, cursor *models.SyncCursor) error

	// RecordSynced stores the fingerprint/version last agreed with the server.
	RecordSynced(ctx context.Context, projectID, clientID string, state *models.SyncedState) error

	// GetSyncedState returns the last agreed state for an element.
	// Returns ErrStateNotFound if the element has never synced.
	GetSyncedState(ctx context.Context, projectID, clientID string) (*models.SyncedState, error)

	// SaveConflict persists a conflict record. Records are kept until a
	// human or policy disposes of them; the sync cycle never deletes them.
	SaveConflict(ctx context.Context, record *models.ConflictRecord) error

	// ListConflicts returns all retained conflict records for a project.
	ListConflicts(ctx context.Context, projectID string) ([]*models.ConflictRecord, error)

	// DeleteConflict removes a reviewed conflict record.
	// Returns ErrConflictNotFound if it doesn't exist.
	DeleteConflict(ctx context.Context, id string) error

	// RecordRejection notes a permanent server rejection for an element so
	// it can surface inline and be excluded from further pushes until the
	// element is edited again.
	RecordRejection(ctx context.Context, projectID, clientID, reason string) error

	// GetRejection returns the rejection note for an element, or "" if none.
	GetRejection(ctx context.Context, projectID, clientID string) (string, error)

	// ClearRejection removes the rejection note for an element.
	ClearRejection(ctx context.Context, projectID, clientID string) error
}
