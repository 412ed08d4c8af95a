package services

import (
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/platform/config"
)

// NewContainer wires the service layer. The authorization engine is built
// first; the token, user and comment services all route their permission
// decisions through it so there is a single source of truth.
func NewContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	authorizer := NewAuthorizerService(repos.UserRepo)
	token := NewTokenService(cfg, repos.UserRepo, repos.RefreshTokenRepo)
	user := NewUserService(repos.UserRepo, token, authorizer)
	comment := NewCommentService(repos.CommentRepo, authorizer)

	return &portssvc.ServiceContainer{
		User:       user,
		Token:      token,
		Comment:    comment,
		Authorizer: authorizer,
	}
}
