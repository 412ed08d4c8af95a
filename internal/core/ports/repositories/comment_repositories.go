package repositories

import (
	"context"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// CommentReader defines read operations for comments. Visibility is part of
// the query contract: soft-deleted comments are filtered in SQL, and listing
// evaluates the author / ACL-read / global-read disjunction in the query
// itself rather than filtering in application code.
type CommentReader interface {
	// FindCommentByID retrieves a non-deleted comment with its ACL.
	// Returns apperrors.ErrNotFound for absent or soft-deleted comments.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// FindReadableComments retrieves the non-deleted comments visible to the
	// subject: authored by them, carrying an ACL read grant for them, or all
	// of them when includeAll is set (subject holds the global read flag).
	FindReadableComments(ctx context.Context, userID string, includeAll bool) ([]domain.Comment, error)
}

// CommentWriter defines write operations for comments.
type CommentWriter interface {
	// SaveComment persists a new comment together with its ACL entries.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// UpdateComment rewrites content, updatedAt and, when replaceACL is set,
	// the full ACL of an existing comment.
	UpdateComment(ctx context.Context, comment domain.Comment, replaceACL bool) error

	// MarkCommentDeleted flips the soft-delete flag. The record is retained.
	MarkCommentDeleted(ctx context.Context, commentID string) error
}

// CommentRepository combines all comment-related repository interfaces.
type CommentRepository interface {
	CommentReader
	CommentWriter
}
