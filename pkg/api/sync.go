package api

import (
	"time"

	"github.com/loreforge/loreforge/internal/models"
)

// RemoteOp tags a pulled record with the operation that produced it.
type RemoteOp string

const (
	RemoteOpCreated RemoteOp = "created"
	RemoteOpUpdated RemoteOp = "updated"
	RemoteOpDeleted RemoteOp = "deleted"
)

// RemoteRecord is the server's authoritative view of one element, as
// returned by pull pages and by push conflict outcomes.
type RemoteRecord struct {
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt *time.Time     `json:"deleted_at,omitempty"`
	ServerID  string         `json:"id"`
	ClientID  string         `json:"client_id"`
	ProjectID string         `json:"project_id"`
	Op        RemoteOp       `json:"op"`
	Payload   models.Payload `json:"payload"`
	Version   int64          `json:"version"`
}

// PullResponse is one page of remote changes. An empty Records slice signals
// end-of-stream; otherwise NextCursor resumes the page walk.
type PullResponse struct {
	Records    []RemoteRecord `json:"records"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// PushItem is one change-log entry on the wire. ClientID together with the
// project is the idempotency key: retrying an already-accepted item is a
// no-op on the server.
type PushItem struct {
	UpdatedAt   time.Time        `json:"updated_at"` // local mutation time, used for LWW
	ClientID    string           `json:"client_id"`
	Operation   models.Operation `json:"operation"`
	Payload     models.Payload   `json:"payload"`
	BaseVersion int64            `json:"base_version"`
}

// PushRequest is an ordered batch of local mutations for one project.
type PushRequest struct {
	ProjectID string     `json:"project_id"`
	Items     []PushItem `json:"items"`
}

// Push outcome statuses.
const (
	PushStatusAccepted = "accepted"
	PushStatusRejected = "rejected"
	PushStatusConflict = "conflict"
)

// PushResult is the per-item outcome of a push.
type PushResult struct {
	ServerUpdatedAt time.Time     `json:"server_updated_at,omitzero"`
	ClientID        string        `json:"client_id"`
	Status          string        `json:"status"`
	ServerID        string        `json:"server_id,omitempty"`
	Reason          string        `json:"reason,omitempty"` // set for rejected items
	RemoteState     *RemoteRecord `json:"remote_state,omitempty"`
	ServerVersion   int64         `json:"server_version,omitempty"`
}

// PushResponse carries the per-item outcomes in request order.
type PushResponse struct {
	Results []PushResult `json:"results"`
}
