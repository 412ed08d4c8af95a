package repositories

import (
	"context"
	"time"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their case-normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePermissions replaces a user's global permission set.
	UpdatePermissions(ctx context.Context, userID string, permissions domain.PermissionSet) error

	// SetResetToken stores the hash and expiry of a pending password reset token.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error

	// ResetPassword replaces the stored password hash and removes any pending
	// reset token in a single statement, so a consumed token can never survive
	// a partial failure.
	ResetPassword(ctx context.Context, userID string, passwordHash string) error
}

// UserRepository combines all user-related repository interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
