// Package auth handles account registration and the local session.
//
// The master password never leaves the machine: the client derives an auth
// key from it with argon2id and the account's public salt, and only a hash
// of that key is sent to the server.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/loreforge/loreforge/internal/client/api"
	"github.com/loreforge/loreforge/internal/client/storage"
	"github.com/loreforge/loreforge/internal/crypto"
	"github.com/loreforge/loreforge/internal/validation"
	pkgapi "github.com/loreforge/loreforge/pkg/api"
)

//go:generate go tool moq -out service_mock.go . Service

// Service manages the user account and the stored session.
type Service interface {
	// Register creates a new account. The user logs in separately.
	Register(ctx context.Context, username, masterPassword string) (*RegisterResult, error)

	// Login authenticates against the server and persists the session.
	Login(ctx context.Context, username, masterPassword string) (*LoginResult, error)

	// Logout removes the stored session. Local data stays on disk.
	Logout(ctx context.Context) error

	// Status reports the stored session state without contacting the server.
	Status(ctx context.Context) (*Status, error)
}

// RegisterResult is returned after successful account creation.
type RegisterResult struct {
	UserID     string
	Username   string
	PublicSalt string // base64
}

// LoginResult is returned after successful authentication.
type LoginResult struct {
	UserID    string
	Username  string
	ExpiresIn int64 // access token lifetime in seconds
}

// Status describes the locally stored session.
type Status struct {
	ExpiresAt     time.Time
	UserID        string
	Username      string
	Authenticated bool
}

type service struct {
	apiClient   api.ClientAPI
	authStorage storage.AuthStorage
	logger      *slog.Logger
}

// NewService creates an auth service.
func NewService(apiClient api.ClientAPI, authStorage storage.AuthStorage, logger *slog.Logger) Service {
	return &service{
		apiClient:   apiClient,
		authStorage: authStorage,
		logger:      logger,
	}
}

func (s *service) Register(ctx context.Context, username, masterPassword string) (*RegisterResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	publicSalt, err := crypto.GenerateSaltBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	authKeyHash, err := deriveAuthKeyHash(masterPassword, username, publicSalt)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
		PublicSalt:  publicSalt,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("Registered new account", "username", username)

	return &RegisterResult{
		UserID:     resp.UserID,
		Username:   username,
		PublicSalt: publicSalt,
	}, nil
}

func (s *service) Login(ctx context.Context, username, masterPassword string) (*LoginResult, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(masterPassword); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	saltResp, err := s.apiClient.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	authKeyHash, err := deriveAuthKeyHash(masterPassword, username, saltResp.PublicSalt)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username:    username,
		AuthKeyHash: authKeyHash,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	auth := &storage.AuthData{
		UserID:       resp.UserID,
		Username:     username,
		PublicSalt:   saltResp.PublicSalt,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if err := s.authStorage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Logged in", "username", username)

	return &LoginResult{
		UserID:    resp.UserID,
		Username:  username,
		ExpiresIn: resp.ExpiresIn,
	}, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.authStorage.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("Logged out")
	return nil
}

func (s *service) Status(ctx context.Context) (*Status, error) {
	auth, err := s.authStorage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &Status{
		ExpiresAt:     time.Unix(auth.ExpiresAt, 0),
		UserID:        auth.UserID,
		Username:      auth.Username,
		Authenticated: true,
	}, nil
}

func deriveAuthKeyHash(masterPassword, username, publicSalt string) (string, error) {
	authKey, err := crypto.DeriveAuthKeyFromBase64Salt(masterPassword, username, publicSalt)
	if err != nil {
		return "", fmt.Errorf("failed to derive auth key: %w", err)
	}
	hash, err := crypto.HashAuthKey(authKey)
	if err != nil {
		return "", fmt.Errorf("failed to hash auth key: %w", err)
	}
	return hash, nil
}
