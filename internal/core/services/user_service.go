package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/dto"
	"github.com/openboard/comment_board_app/internal/utils"
)

// userService implements account management: registration, credential checks,
// the admin surface and the password-reset sub-flow.
type userService struct {
	userRepo   portsrepo.UserRepository
	tokenSvc   portssvc.TokenSvcFacade
	authorizer portssvc.AuthorizerSvcFacade
}

// NewUserService creates a new userService.
func NewUserService(userRepo portsrepo.UserRepository, tokenSvc portssvc.TokenSvcFacade, authorizer portssvc.AuthorizerSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		tokenSvc:   tokenSvc,
		authorizer: authorizer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// normalizeEmail lower-cases and trims an email so uniqueness is
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates a new member account. Fresh accounts get the default
// permission set: they may write their own comments but read only what they
// authored or were granted.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		Permissions:  domain.DefaultPermissions(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser checks credentials via the one-way hash comparison. The
// same failure is returned for an unknown email and a wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// requireAdmin resolves the requester and checks the administrative
// capability.
func (s *userService) requireAdmin(ctx context.Context, requesterID string) error {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return err
	}
	if !s.authorizer.Authorize(subject, domain.ActionAdminister, nil) {
		return apperrors.ErrForbidden
	}
	return nil
}

// GetUserForAdmin retrieves any account for the admin surface.
func (s *userService) GetUserForAdmin(ctx context.Context, requesterID string, userID string) (*domain.User, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a page of accounts for the admin surface.
func (s *userService) ListUsers(ctx context.Context, requesterID string, limit, offset int) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// UpdatePermissions replaces the target's global permission set. The new set
// binds on the target's next request; no token refresh is involved.
func (s *userService) UpdatePermissions(ctx context.Context, requesterID string, targetUserID string, permissions domain.PermissionSet) (*domain.User, error) {
	if err := s.requireAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	for _, p := range permissions {
		if !domain.ValidPermission(p) {
			return nil, fmt.Errorf("%w: invalid permission %q", apperrors.ErrValidation, p)
		}
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdatePermissions(ctx, targetUserID, permissions); err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}
	return s.userRepo.FindUserByID(ctx, targetUserID)
}

// ForgotPassword issues a reset token and stores its hash and expiry on the
// account. Delivery is the caller's concern; the token is returned directly.
func (s *userService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}

	token, expiresAt, err := s.tokenSvc.GenerateResetToken(ctx, user)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.SetResetToken(ctx, user.UserID, utils.HashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token. The presented token must verify
// cryptographically, match the stored hash, and be unexpired; on success the
// stored token is cleared so a replay fails.
func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	userID, err := s.tokenSvc.VerifyResetToken(ctx, token)
	if err != nil {
		return apperrors.ErrValidation
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrValidation
		}
		return fmt.Errorf("failed to load user for password reset: %w", err)
	}
	if user.ResetTokenHash == "" || !utils.CompareTokenHash(token, user.ResetTokenHash) {
		return apperrors.ErrValidation
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return apperrors.ErrValidation
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	// One statement: the password write and the token consumption cannot
	// come apart, so no error path leaves a spent token replayable.
	if err := s.userRepo.ResetPassword(ctx, user.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}
