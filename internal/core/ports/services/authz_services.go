package services

import (
	"context"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// AuthorizerSvcFacade is the single decision point for "may this subject
// perform this action on this resource". Every permission-gated operation
// goes through it; there are no parallel permission code paths.
type AuthorizerSvcFacade interface {
	// ResolveSubject loads the user behind a verified token and builds the
	// request-scoped subject. It reads the store fresh on every call so a
	// revoked permission takes effect on the very next request.
	ResolveSubject(ctx context.Context, userID string) (domain.Subject, error)

	// Authorize decides whether the subject may perform the action. The
	// comment is nil for global-scope actions (listing, creating,
	// administrative operations). Absence of an explicit allow is a deny.
	Authorize(subject domain.Subject, action domain.Action, comment *domain.Comment) bool
}
