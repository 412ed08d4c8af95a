package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
)

// authzService is the authorization engine. It unifies the two permission
// models of the board (global capability flags and per-comment ACLs) behind
// one decision procedure.
type authzService struct {
	userRepo portsrepo.UserReader
}

// NewAuthorizerService creates the authorization engine.
func NewAuthorizerService(userRepo portsrepo.UserReader) portssvc.AuthorizerSvcFacade {
	return &authzService{userRepo: userRepo}
}

var _ portssvc.AuthorizerSvcFacade = (*authzService)(nil)

// ResolveSubject loads the user behind a verified token. The lookup hits the
// store on every call; nothing is cached, so permission or role changes bind
// the next request.
func (s *authzService) ResolveSubject(ctx context.Context, userID string) (domain.Subject, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The token verified but the account is gone.
			return domain.Subject{}, apperrors.ErrUnauthorized
		}
		return domain.Subject{}, fmt.Errorf("failed to resolve subject %s: %w", userID, err)
	}
	return domain.SubjectOf(user), nil
}

// Authorize applies the decision policy, strongest grant first:
//
//  1. The author of a comment may do anything to it.
//  2. An ACL entry for the subject granting the matching flag allows the
//     action. Flags are independent: canWrite does not imply canRead.
//  3. The admin role allows administrative actions, regardless of ACLs.
//  4. A global-scope action is allowed when the subject holds the matching
//     global permission. Global read additionally satisfies reading a
//     specific comment, since that comment is already in the subject's
//     readable set; global write and delete never unlock someone else's
//     comment.
//  5. Everything else is denied. A soft-deleted comment denies every action
//     for every subject, the author included.
func (s *authzService) Authorize(subject domain.Subject, action domain.Action, comment *domain.Comment) bool {
	if comment != nil {
		if comment.IsDeleted {
			return false
		}
		if comment.AuthorID == subject.UserID {
			return true
		}
		if entry, ok := comment.Grant(subject.UserID); ok && entry.Allows(action) {
			return true
		}
	}

	if action == domain.ActionAdminister {
		return subject.IsAdmin()
	}

	if comment == nil || action == domain.ActionRead {
		if perm := action.Permission(); perm != "" {
			return subject.Permissions.Has(perm)
		}
	}

	return false
}
