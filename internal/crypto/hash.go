package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashAuthKey hashes the auth key with sha256. Deterministic on both sides:
// the client sends the hash, the server stores and compares it.
func HashAuthKey(authKey []byte) (string, error) {
	if len(authKey) == 0 {
		return "", fmt.Errorf("auth key cannot be empty")
	}

	hash := sha256.Sum256(authKey)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyAuthKey checks an auth key against a stored hash.
func VerifyAuthKey(authKey []byte, hashedAuthKey string) error {
	if len(authKey) == 0 {
		return fmt.Errorf("auth key cannot be empty")
	}
	if hashedAuthKey == "" {
		return fmt.Errorf("hashed auth key cannot be empty")
	}

	computedHash, err := HashAuthKey(authKey)
	if err != nil {
		return fmt.Errorf("failed to compute auth key hash: %w", err)
	}

	if computedHash != hashedAuthKey {
		return fmt.Errorf("invalid auth key")
	}

	return nil
}
