package models

import "time"

// User represents a registered writer account.
type User struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`            // user UUID
	Username    string    `json:"username"`      // unique username
	AuthKeyHash string    `json:"auth_key_hash"` // sha256 hash of the derived auth key
	PublicSalt  string    `json:"public_salt"`   // base64 encoded salt (32 bytes)
}

// RefreshToken represents a stored refresh token for a user session.
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"` // sha256 hash of the token value
}
