package services

import (
	"context"

	"github.com/openboard/comment_board_app/internal/core/domain"
	"github.com/openboard/comment_board_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserForAdmin retrieves any user; the requester must hold the
	// administrative capability.
	GetUserForAdmin(ctx context.Context, requesterID string, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users; admin only.
	ListUsers(ctx context.Context, requesterID string, limit, offset int) ([]domain.User, error)
}

// UserAuthSvc defines credential operations.
type UserAuthSvc interface {
	// RegisterUser creates a new account with the default permission set.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser checks email and password and returns the user.
	// Fails with apperrors.ErrUnauthorized on any mismatch.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserPermissionSvc defines global permission management.
type UserPermissionSvc interface {
	// UpdatePermissions replaces a target user's global permission set;
	// admin only. The change is effective on the target's next request.
	UpdatePermissions(ctx context.Context, requesterID string, targetUserID string, permissions domain.PermissionSet) (*domain.User, error)
}

// UserPasswordResetSvc defines the password-reset sub-flow.
type UserPasswordResetSvc interface {
	// ForgotPassword issues a signed, 1-hour reset token for the account and
	// stores its hash. Fails with apperrors.ErrNotFound for unknown emails.
	ForgotPassword(ctx context.Context, email string) (string, error)

	// ResetPassword consumes a reset token: the presented token must verify
	// cryptographically, be unexpired, and match the stored hash. On success
	// the stored token is cleared, making it single-use.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserPermissionSvc
	UserPasswordResetSvc
}
