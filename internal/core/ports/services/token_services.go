package services

import (
	"context"
	"time"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuerSvc defines operations that mint new tokens.
type TokenIssuerSvc interface {
	// IssueTokenPair creates a short-lived access token and a persisted
	// 7-day refresh token for the user.
	IssueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error)

	// GenerateResetToken creates a signed, time-boxed password reset token.
	// The caller is responsible for storing its hash on the user record.
	GenerateResetToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// TokenVerifierSvc defines verification operations.
type TokenVerifierSvc interface {
	// VerifyAccessToken validates an access token and returns the subject
	// user ID. Fails with apperrors.ErrTokenExpired for an expired token and
	// apperrors.ErrUnauthorized for every other defect.
	VerifyAccessToken(ctx context.Context, tokenString string) (string, error)

	// VerifyResetToken validates a password reset token's signature and
	// expiry and returns the subject user ID.
	VerifyResetToken(ctx context.Context, tokenString string) (string, error)

	// RefreshAccessToken validates a refresh token (signature, expiry, store
	// presence) and mints a new access token. The refresh token is not
	// rotated; it stays valid until its own expiry or logout.
	RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error)
}

// TokenRevokerSvc defines revocation operations.
type TokenRevokerSvc interface {
	// RevokeRefreshTokens purges every refresh token issued to the user.
	RevokeRefreshTokens(ctx context.Context, userID string) error
}

// TokenSvcFacade combines all token lifecycle interfaces.
type TokenSvcFacade interface {
	TokenIssuerSvc
	TokenVerifierSvc
	TokenRevokerSvc
}
