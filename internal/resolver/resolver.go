// Package resolver decides, per element, how a pending local change and an
// observed remote change reconcile. All functions are pure: callers persist
// the outcome.
package resolver

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loreforge/loreforge/internal/fingerprint"
	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/pkg/api"
)

// Policy configures the tie-break for conflicting edits with equal
// timestamps and versions. The default prefers the remote side so that
// every client converges on the server's value.
type Policy struct {
	PreferRemoteOnTie bool
}

// DefaultPolicy returns the standard last-write-wins policy.
func DefaultPolicy() Policy {
	return Policy{PreferRemoteOnTie: true}
}

// Input is everything known about a single clientID during reconciliation.
type Input struct {
	ProjectID string
	ClientID  string
	Local     *models.ChangeLogEntry // pending local change, nil if none
	Base      *models.SyncedState    // last-known-synced state, nil if never synced
	Remote    *api.RemoteRecord      // remote record observed via pull or push conflict, nil if none
}

// Decision is the resolver outcome for one clientID.
// At most one of PushLocal/DropLocal is set; ApplyRemote may combine with
// DropLocal when the remote value supersedes the pending local change.
type Decision struct {
	Conflict    *models.ConflictRecord // persisted when both sides diverged, nil otherwise
	ApplyRemote bool                   // write the remote record into local storage
	PushLocal   bool                   // include the pending entry in the push batch
	DropLocal   bool                   // remove the pending entry without pushing
}

// Resolve applies the reconciliation decision table.
func (p Policy) Resolve(in Input) (Decision, error) {
	remoteChanged := in.remoteChanged()

	switch {
	case in.Local == nil && !remoteChanged:
		return Decision{}, nil

	case in.Local == nil && remoteChanged:
		// Local fast-forwards to the remote value.
		return Decision{ApplyRemote: true}, nil

	case in.Local != nil && !remoteChanged:
		return Decision{PushLocal: true}, nil
	}

	// Both sides changed since the last agreed state. A stale local base
	// (fingerprint mismatch against the remote's last-known state) is handled
	// identically: we cannot assume safety either way.
	return p.resolveConflict(in)
}

// resolveConflict handles the both-sides-changed rows: last-write-wins with
// a deterministic tie-break, always materializing a ConflictRecord so the
// losing change stays visible.
func (p Policy) resolveConflict(in Input) (Decision, error) {
	local, remote := in.Local, in.Remote

	localFP, err := fingerprint.Compute(local.PayloadSnapshot)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to fingerprint local payload: %w", err)
	}
	remoteFP, err := fingerprint.Compute(remote.Payload)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to fingerprint remote payload: %w", err)
	}

	localDelete := local.Operation == models.OpDelete
	remoteDelete := remote.DeletedAt != nil

	// Deleting a record that is already a remote tombstone is a no-op
	// success: absorb the tombstone, drop the pending entry, no conflict.
	if localDelete && remoteDelete {
		return Decision{ApplyRemote: true, DropLocal: true}, nil
	}

	// Identical payloads mean a lost-ack retry or an echo of our own push:
	// both sides already agree, nothing to record.
	if localFP == remoteFP && !localDelete && !remoteDelete {
		return Decision{ApplyRemote: true, DropLocal: true}, nil
	}

	localVersion := local.BaseVersion + 1
	cmp := compare(local.AppendedAt, localVersion, remote.UpdatedAt, remote.Version)

	localWins := cmp > 0
	if cmp == 0 {
		// Delete precedence: an equally-new delete wins over the update on
		// the other side. Otherwise the configured tie-break applies.
		switch {
		case localDelete:
			localWins = true
		case remoteDelete:
			localWins = false
		default:
			localWins = !p.PreferRemoteOnTie
		}
	}

	conflict := &models.ConflictRecord{
		ID:                uuid.New().String(),
		ClientID:          in.ClientID,
		ProjectID:         in.ProjectID,
		DetectedAt:        time.Now(),
		LocalPayload:      local.PayloadSnapshot.Clone(),
		RemotePayload:     remote.Payload.Clone(),
		LocalFingerprint:  localFP,
		RemoteFingerprint: remoteFP,
		LocalUpdatedAt:    local.AppendedAt,
		RemoteUpdatedAt:   remote.UpdatedAt,
	}

	if localWins {
		conflict.Winner = models.WinnerLocal
		return Decision{PushLocal: true, Conflict: conflict}, nil
	}

	conflict.Winner = models.WinnerRemote
	return Decision{ApplyRemote: true, DropLocal: true, Conflict: conflict}, nil
}

// remoteChanged reports whether the remote record differs from the state we
// last agreed on. A remote record for a never-synced element always counts
// as changed.
func (in Input) remoteChanged() bool {
	if in.Remote == nil {
		return false
	}
	if in.Base == nil {
		return true
	}
	return in.Remote.Version != in.Base.Version
}

// compare orders two (timestamp, version) pairs: timestamp first, then
// version as the cheaper heuristic. Returns -1, 0 or 1.
func compare(aTime time.Time, aVersion int64, bTime time.Time, bVersion int64) int {
	if aTime.After(bTime) {
		return 1
	}
	if aTime.Before(bTime) {
		return -1
	}
	switch {
	case aVersion > bVersion:
		return 1
	case aVersion < bVersion:
		return -1
	}
	return 0
}
