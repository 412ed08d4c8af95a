package models

import "time"

// RefreshToken is the database row shape for an issued refresh token.
// Only the SHA-256 hash of the token string is stored.
type RefreshToken struct {
	TokenHash string    `db:"token_hash"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
