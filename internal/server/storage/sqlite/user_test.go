package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loreforge/loreforge/internal/models"
	"github.com/loreforge/loreforge/internal/server/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testUser(username string) *models.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.User{
		CreatedAt:   now,
		UpdatedAt:   now,
		ID:          uuid.New().String(),
		Username:    username,
		AuthKeyHash: "hash",
		PublicSalt:  "salt",
	}
}

func TestCreateUser(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	user := testUser("worldsmith")
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByUsername(ctx, "worldsmith")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.AuthKeyHash, got.AuthKeyHash)
	assert.Equal(t, user.PublicSalt, got.PublicSalt)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)
}

func TestCreateUser_Duplicate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("worldsmith")))

	err := store.CreateUser(ctx, testUser("worldsmith"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = store.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
