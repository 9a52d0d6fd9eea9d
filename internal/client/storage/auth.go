package storage

import "context"

// AuthData is the locally persisted session state.
type AuthData struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	PublicSalt   string `json:"public_salt"` // base64
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

//go:generate go tool moq -out auth_mock.go . AuthStorage

// AuthStorage persists the client session.
type AuthStorage interface {
	// SaveAuth stores the session data, replacing any previous session.
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored session.
	// Returns ErrAuthNotFound if no session exists.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored session.
	DeleteAuth(ctx context.Context) error
}
