package models

import "time"

// ServerElement is the authoritative copy of an element held by the server.
// Version increments on every accepted mutation; tombstones keep their row
// so deletions propagate to every client.
type ServerElement struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	ID        string     `json:"id"` // server-assigned UUID
	UserID    string     `json:"user_id"`
	ProjectID string     `json:"project_id"`
	ClientID  string     `json:"client_id"`
	Payload   Payload    `json:"payload"`
	Version   int64      `json:"version"`
}

// IsDeleted reports whether the element is a tombstone.
func (e *ServerElement) IsDeleted() bool {
	return e.DeletedAt != nil
}
