package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the pgx-backed repository set.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		CommentRepo:      newPgxCommentRepository(dbPool),
		RefreshTokenRepo: newPgxRefreshTokenRepository(dbPool),
	}
}
