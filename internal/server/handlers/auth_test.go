package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/server/storage"
	"github.com/loreforge/loreforge/pkg/api"
)

// mockUserStorage is an in-memory UserStorage for handler tests.
type mockUserStorage struct {
	users map[string]*models.User // username -> user
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

// mockTokenStorage is an in-memory TokenStorage keyed by token hash.
type mockTokenStorage struct {
	tokens map[string]*models.RefreshToken
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return token, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(_ context.Context, tokenHash string) error {
	if _, ok := m.tokens[tokenHash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenHash)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(_ context.Context, userID string) (int, error) {
	deleted := 0
	for hash, token := range m.tokens {
		if token.UserID == userID {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(_ context.Context) (int, error) {
	deleted := 0
	now := time.Now()
	for hash, token := range m.tokens {
		if now.After(token.ExpiresAt) {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret"),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func newAuthFixture() (*AuthHandler, *mockUserStorage, *mockTokenStorage) {
	users := newMockUserStorage()
	tokens := newMockTokenStorage()
	handler := NewAuthHandler(testLogger(), users, tokens, testJWTConfig())
	return handler, users, tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister(t *testing.T) {
	handler, users, _ := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UserID)

	stored, ok := users.users["worldsmith"]
	require.True(t, ok)
	assert.Equal(t, "abc123", stored.AuthKeyHash)
	assert.Equal(t, "c2FsdA==", stored.PublicSalt)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	handler, _, _ := newAuthFixture()

	req := api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	}
	w := postJSON(t, handler.Register, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Register, "/api/v1/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	handler, _, _ := newAuthFixture()

	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{"bad username", api.RegisterRequest{Username: "a!", AuthKeyHash: "h", PublicSalt: "s"}},
		{"missing hash", api.RegisterRequest{Username: "worldsmith", PublicSalt: "s"}},
		{"missing salt", api.RegisterRequest{Username: "worldsmith", AuthKeyHash: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handler.Register, "/api/v1/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetSalt(t *testing.T) {
	handler, _, _ := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/worldsmith", nil)
	req.SetPathValue("username", "worldsmith")
	w = httptest.NewRecorder()
	handler.GetSalt(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SaltResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c2FsdA==", resp.PublicSalt)
}

func TestGetSalt_UnknownUser(t *testing.T) {
	handler, _, _ := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/salt/nobody", nil)
	req.SetPathValue("username", "nobody")
	w := httptest.NewRecorder()
	handler.GetSalt(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	handler, _, tokens := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, int64(60), resp.ExpiresIn)

	// Only the hash of the refresh token hits storage.
	_, rawStored := tokens.tokens[resp.RefreshToken]
	assert.False(t, rawStored)
	_, hashStored := tokens.tokens[HashRefreshToken(resp.RefreshToken)]
	assert.True(t, hashStored)

	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, "worldsmith", claims.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler, _, _ := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{
		Username:    "worldsmith",
		AuthKeyHash: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{
		Username:    "nobody99",
		AuthKeyHash: "abc123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	handler, _, tokens := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = postJSON(t, handler.Refresh, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var refreshResp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshResp))
	assert.NotEmpty(t, refreshResp.AccessToken)
	assert.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken)

	// The old token is revoked by the exchange.
	_, oldStillStored := tokens.tokens[HashRefreshToken(loginResp.RefreshToken)]
	assert.False(t, oldStillStored)

	w = postJSON(t, handler.Refresh, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_Expired(t *testing.T) {
	handler, users, tokens := newAuthFixture()

	users.users["worldsmith"] = &models.User{
		ID:       "user-1",
		Username: "worldsmith",
	}
	tokens.tokens[HashRefreshToken("stale")] = &models.RefreshToken{
		ID:        "token-1",
		TokenHash: HashRefreshToken("stale"),
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	w := postJSON(t, handler.Refresh, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: "stale",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	handler, _, tokens := newAuthFixture()

	w := postJSON(t, handler.Register, "/api/v1/auth/register", api.RegisterRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
		PublicSalt:  "c2FsdA==",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/api/v1/auth/login", api.LoginRequest{
		Username:    "worldsmith",
		AuthKeyHash: "abc123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, tokens.tokens)
}

func TestLogout_MissingHeader(t *testing.T) {
	handler, _, _ := newAuthFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
