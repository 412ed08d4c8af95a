package services

import (
	"context"

	"github.com/openboard/comment_board_app/internal/core/domain"
	"github.com/openboard/comment_board_app/internal/dto"
)

// CommentReaderSvc defines read operations for comments.
type CommentReaderSvc interface {
	// ListComments returns the comments the requester may read, excluding
	// soft-deleted ones.
	ListComments(ctx context.Context, requesterID string) ([]domain.Comment, error)

	// GetComment returns a single readable comment. Denials and absent or
	// soft-deleted comments both surface as apperrors.ErrNotFound.
	GetComment(ctx context.Context, requesterID string, commentID string) (*domain.Comment, error)
}

// CommentWriterSvc defines mutation operations for comments.
type CommentWriterSvc interface {
	// CreateComment creates a comment authored by the requester; requires
	// the global write permission.
	CreateComment(ctx context.Context, requesterID string, req dto.CreateCommentRequest) (*domain.Comment, error)

	// UpdateComment rewrites content (and optionally the ACL) of a comment
	// the requester authored or holds a write grant on.
	UpdateComment(ctx context.Context, requesterID string, commentID string, req dto.UpdateCommentRequest) (*domain.Comment, error)

	// DeleteComment soft-deletes a comment the requester authored or holds a
	// delete grant on. The flag never reverts.
	DeleteComment(ctx context.Context, requesterID string, commentID string) error
}

// CommentSvcFacade combines all comment-related service interfaces.
type CommentSvcFacade interface {
	CommentReaderSvc
	CommentWriterSvc
}
