package domain

import "time"

// RefreshToken is the stored record of an issued refresh token. Only a
// SHA-256 hash of the token string is kept at rest; a token is valid only if
// its hash is present here, the record is unexpired, and the token string
// itself verifies against the refresh signing secret.
type RefreshToken struct {
	TokenHash string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the record is past its time-to-live.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
