package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the SHA-256 hash of a token string as hex. Refresh and
// reset tokens are stored hashed so a leaked database row cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash compares a raw token string against its stored hash.
func CompareTokenHash(token string, storedHash string) bool {
	return HashToken(token) == storedHash
}
