package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/platform/config"
	"github.com/openboard/comment_board_app/internal/utils"
)

// tokenService owns the token lifecycle: issuance, verification, refresh and
// revocation of the access/refresh pair, plus the separate password-reset
// token namespace. Access and refresh tokens are signed with different
// secrets so one can never stand in for the other.
type tokenService struct {
	cfg         *config.Config
	userRepo    portsrepo.UserReader
	refreshRepo portsrepo.RefreshTokenRepository
}

// NewTokenService creates a new tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserReader, refreshRepo portsrepo.RefreshTokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueTokenPair mints a short-lived access token and a 7-day refresh token,
// persisting the refresh token's hash so logout can revoke it.
func (s *tokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	record := domain.RefreshToken{
		TokenHash: utils.HashToken(refreshToken),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenExpiryDuration),
	}
	if err := s.refreshRepo.SaveRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccessToken validates signature and claims and returns the subject
// user ID. Expiry is a distinct, recoverable failure; everything else fails
// closed as ErrUnauthorized.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}

// RefreshAccessToken validates a refresh token and mints a new access token.
// A refresh token is valid only if its signature verifies, it is unexpired,
// and its hash is still present in the store. It is not rotated on use.
func (s *tokenService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(refreshTokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrRefreshTokenExpired
		}
		return "", apperrors.ErrUnauthorized
	}

	record, err := s.refreshRepo.FindRefreshToken(ctx, utils.HashToken(refreshTokenString))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Purged by logout, or never issued by us.
			return "", apperrors.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record.Expired(time.Now()) {
		return "", apperrors.ErrRefreshTokenExpired
	}
	if record.UserID != claims.Subject {
		return "", apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to load user for refresh: %w", err)
	}

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// RevokeRefreshTokens purges every refresh token issued to the user. The
// repository does this in one statement, so a refresh racing a logout either
// finds its token or does not; a purged token can never still verify.
func (s *tokenService) RevokeRefreshTokens(ctx context.Context, userID string) error {
	if err := s.refreshRepo.DeleteRefreshTokensForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user %s: %w", userID, err)
	}
	return nil
}

// resetSecret derives the reset signing key from the access secret. Reset
// tokens live in their own namespace: one can never verify as a bearer token
// and an access token can never drive a password reset.
func (s *tokenService) resetSecret() string {
	return s.cfg.JWTSecret + ":password-reset"
}

// GenerateResetToken mints a signed, time-boxed password reset token. The
// reset namespace shares nothing with the refresh store; the caller persists
// the hash on the user record.
func (s *tokenService) GenerateResetToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.ResetTokenExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.resetSecret(), s.cfg.ResetTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyResetToken validates a reset token's signature and expiry and returns
// the subject user ID. All defects collapse to ErrValidation; a reset token
// failure is never recoverable by refresh.
func (s *tokenService) VerifyResetToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.resetSecret())
	if err != nil || claims.Subject == "" {
		return "", apperrors.ErrValidation
	}
	return claims.Subject, nil
}
