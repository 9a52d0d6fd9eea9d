package storage

import (
	"context"

	"github.com/loreforge/loreforge/internal/models"
)

//go:generate go tool moq -out changelog_mock.go . ChangeLogStorage

// ChangeLogStorage is the ordered, durable record of local mutations that
// have not yet been acknowledged by the server. The application layer only
// ever appends; draining and removal belong to the sync coordinator.
type ChangeLogStorage interface {
	// Append records a local mutation and returns its assigned sequence.
	// Mutations to a clientID that already has a pending entry coalesce:
	//   create+update  -> create with the latest payload
	//   update+update  -> update with the latest payload
	//   create+delete  -> entry removed entirely (nothing was ever pushed)
	//   update+delete  -> delete
	// Appending a create for a clientID with a pending non-delete entry
	// fails with ErrInvalidOperation; callers must issue an update instead.
	Append(ctx context.Context, entry *models.ChangeLogEntry) (uint64, error)

	// Drain returns up to maxBatch pending entries in ascending sequence
	// order without removing them, so an aborted cycle can safely re-drain.
	Drain(ctx context.Context, projectID string, maxBatch int) ([]*models.ChangeLogEntry, error)

	// Acknowledge removes entries whose sequence is in seqs. Called only
	// after the server confirmed persistence of those exact entries.
	Acknowledge(ctx context.Context, projectID string, seqs []uint64) error

	// PendingCount returns the number of entries awaiting acknowledgment.
	PendingCount(ctx context.Context, projectID string) (int, error)
}
