package models

import (
	"encoding/json"
	"time"
)

// Element is the unit of synchronization: one worldbuilding entity
// (character, location, faction or a custom-typed entity) inside a project.
type Element struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`           // set by whichever side produced the current value
	DeletedAt *time.Time `json:"deleted_at,omitempty"` // non-nil marks a tombstone
	ServerID  string     `json:"server_id,omitempty"`  // server primary key, empty until first accepted push
	ClientID  string     `json:"client_id"`            // client-generated UUID, never reassigned
	ProjectID string     `json:"project_id"`
	Payload   Payload    `json:"payload"`
	Version   int64      `json:"version"` // incremented on every accepted mutation
}

// IsDeleted reports whether the element is a tombstone.
func (e *Element) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	clone := *e
	if e.DeletedAt != nil {
		t := *e.DeletedAt
		clone.DeletedAt = &t
	}
	clone.Payload = e.Payload.Clone()
	return &clone
}

// Element categories. Custom categories carry their fields entirely in Extra.
const (
	CategoryCharacter = "character"
	CategoryLocation  = "location"
	CategoryFaction   = "faction"
	CategoryCustom    = "custom"
)

// Payload holds the element content. It is a tagged union keyed by Category:
// the variant struct for the category carries the known core fields, while
// Extra keeps category-specific custom fields, and Prompts keeps the
// free-form question/answer pairs a writer can attach to any element.
type Payload struct {
	Category  string           `json:"category"`
	Name      string           `json:"name"`
	Character *CharacterFields `json:"character,omitempty"`
	Location  *LocationFields  `json:"location,omitempty"`
	Faction   *FactionFields   `json:"faction,omitempty"`
	Prompts   []PromptAnswer   `json:"prompts,omitempty"`
	Extra     map[string]any   `json:"extra,omitempty"`
}

// CharacterFields are the known core fields of a character element.
type CharacterFields struct {
	Aliases    []string `json:"aliases,omitempty"`
	Species    string   `json:"species,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	Biography  string   `json:"biography,omitempty"`
}

// LocationFields are the known core fields of a location element.
type LocationFields struct {
	Region      string `json:"region,omitempty"`
	Population  string `json:"population,omitempty"`
	Description string `json:"description,omitempty"`
}

// FactionFields are the known core fields of a faction element.
type FactionFields struct {
	Leader  string   `json:"leader,omitempty"`
	Goals   string   `json:"goals,omitempty"`
	Members []string `json:"members,omitempty"`
}

// PromptAnswer is one free-form question/answer pair.
type PromptAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Clone returns a deep copy of the payload.
func (p Payload) Clone() Payload {
	clone := p
	if p.Character != nil {
		c := *p.Character
		c.Aliases = append([]string(nil), p.Character.Aliases...)
		clone.Character = &c
	}
	if p.Location != nil {
		l := *p.Location
		clone.Location = &l
	}
	if p.Faction != nil {
		f := *p.Faction
		f.Members = append([]string(nil), p.Faction.Members...)
		clone.Faction = &f
	}
	clone.Prompts = append([]PromptAnswer(nil), p.Prompts...)
	if p.Extra != nil {
		extra := make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			extra[k] = v
		}
		clone.Extra = extra
	}
	return clone
}

// Operation identifies the kind of a pending local mutation.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ChangeLogEntry is one pending local mutation awaiting push.
// Sequence is monotonic per project and assigned at append time; an entry is
// removed only after the server acknowledges that exact sequence.
type ChangeLogEntry struct {
	AppendedAt      time.Time `json:"appended_at"` // local LWW timestamp for the mutation
	ClientID        string    `json:"client_id"`
	ProjectID       string    `json:"project_id"`
	Operation       Operation `json:"operation"`
	PayloadSnapshot Payload   `json:"payload_snapshot"`
	BaseVersion     int64     `json:"base_version"` // element version the mutation was made against
	Sequence        uint64    `json:"sequence"`
}

// SyncCursor is the per-project watermark pair marking sync progress.
// Owned exclusively by the sync coordinator; advanced only after a cycle
// step is durably committed.
type SyncCursor struct {
	LastPulledAt       time.Time `json:"last_pulled_at"`
	ProjectID          string    `json:"project_id"`
	LastPushedSequence uint64    `json:"last_pushed_sequence"`
}

// SyncedState is the fingerprint/version pair last known to match the server
// for one element. The conflict resolver uses it to distinguish "remote
// changed since we last agreed" from "remote is still what we last saw".
type SyncedState struct {
	Fingerprint string `json:"fingerprint"`
	Version     int64  `json:"version"`
}

// ConflictRecord is persisted evidence of a divergence between local and
// remote state. It is retained until a human or policy disposes of it; the
// sync cycle never deletes it.
type ConflictRecord struct {
	DetectedAt        time.Time `json:"detected_at"`
	LocalUpdatedAt    time.Time `json:"local_updated_at"`
	RemoteUpdatedAt   time.Time `json:"remote_updated_at"`
	ID                string    `json:"id"`
	ClientID          string    `json:"client_id"`
	ProjectID         string    `json:"project_id"`
	Winner            string    `json:"winner"` // "local" or "remote"
	LocalPayload      Payload   `json:"local_payload"`
	RemotePayload     Payload   `json:"remote_payload"`
	LocalFingerprint  string    `json:"local_fingerprint"`
	RemoteFingerprint string    `json:"remote_fingerprint"`
}

// Conflict winners.
const (
	WinnerLocal  = "local"
	WinnerRemote = "remote"
)

// PayloadMap converts a payload to its generic map form via a JSON round
// trip. Fingerprinting and schema validation both operate on this form so
// that typed and untyped producers hash identically.
func PayloadMap(p Payload) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
