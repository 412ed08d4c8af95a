package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for a registered account.
// PasswordHash and the reset token columns never leave the repository layer.
type User struct {
	UserID       string   `db:"user_id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         string   `db:"role"`
	Permissions  []string `db:"permissions"`

	ResetTokenHash      sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiresAt sql.NullTime   `db:"reset_token_expires_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
