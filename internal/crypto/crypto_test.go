package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAuthKey_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	k1, err := DeriveAuthKey("correct horse battery staple", "alice", salt)
	require.NoError(t, err)
	k2, err := DeriveAuthKey("correct horse battery staple", "alice", salt)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, Argon2KeyLen)
}

func TestDeriveAuthKey_DiffersPerUserAndPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	k1, err := DeriveAuthKey("password-number-one", "alice", salt)
	require.NoError(t, err)
	k2, err := DeriveAuthKey("password-number-two", "alice", salt)
	require.NoError(t, err)
	k3, err := DeriveAuthKey("password-number-one", "bob", salt)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestDeriveAuthKey_Validation(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	_, err = DeriveAuthKey("", "alice", salt)
	assert.Error(t, err)

	_, err = DeriveAuthKey("some long password", "", salt)
	assert.Error(t, err)

	_, err = DeriveAuthKey("some long password", "alice", []byte("short"))
	assert.Error(t, err)
}

func TestHashAuthKey_RoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	hash, err := HashAuthKey(key)
	require.NoError(t, err)
	assert.Len(t, hash, 64) // hex sha256

	assert.NoError(t, VerifyAuthKey(key, hash))
	assert.Error(t, VerifyAuthKey([]byte("wrong key material here........"), hash))
}
