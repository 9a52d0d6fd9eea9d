package api

// RegisterRequest asks the server to create a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	AuthKeyHash string `json:"auth_key_hash"` // sha256 hash of the derived auth key (hex)
	PublicSalt  string `json:"public_salt"`   // base64 encoded salt (32 bytes)
}

// RegisterResponse confirms a successful registration.
type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// SaltResponse returns a user's public salt for client-side key derivation.
type SaltResponse struct {
	PublicSalt string `json:"public_salt"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username    string `json:"username"`
	AuthKeyHash string `json:"auth_key_hash"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a fresh token pair.
type TokenResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime in seconds
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
