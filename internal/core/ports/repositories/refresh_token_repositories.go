package repositories

import (
	"context"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// RefreshTokenRepository persists issued refresh tokens, keyed by the SHA-256
// hash of the token string.
type RefreshTokenRepository interface {
	// SaveRefreshToken stores a newly issued token record.
	SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error

	// FindRefreshToken looks up a token record by hash. Returns
	// apperrors.ErrNotFound if absent.
	FindRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// DeleteRefreshTokensForUser purges every token belonging to a user in a
	// single statement, so a concurrent refresh either sees the token or it
	// is gone; there is no half-purged state.
	DeleteRefreshTokensForUser(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens prunes records past their expiry.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
