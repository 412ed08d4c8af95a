package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	portssvc "github.com/openboard/comment_board_app/internal/core/ports/services"
	"github.com/openboard/comment_board_app/internal/dto"
)

// commentService implements comment CRUD behind the authorization engine.
// Every mutation re-resolves the subject from the store first, so a revoked
// permission denies the very next call.
type commentService struct {
	commentRepo portsrepo.CommentRepository
	authorizer  portssvc.AuthorizerSvcFacade
}

// NewCommentService creates a new commentService.
func NewCommentService(commentRepo portsrepo.CommentRepository, authorizer portssvc.AuthorizerSvcFacade) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

// ListComments returns the requester's readable set. The visibility
// disjunction (author, ACL read grant, global read) and the soft-delete
// filter are part of the repository query, not an application-side filter.
func (s *commentService) ListComments(ctx context.Context, requesterID string) ([]domain.Comment, error) {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	includeAll := subject.Permissions.Has(domain.PermissionRead)
	comments, err := s.commentRepo.FindReadableComments(ctx, subject.UserID, includeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetComment returns one readable comment. A denial is indistinguishable
// from absence.
func (s *commentService) GetComment(ctx context.Context, requesterID string, commentID string) (*domain.Comment, error) {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(subject, domain.ActionRead, comment) {
		return nil, apperrors.ErrNotFound
	}
	return comment, nil
}

// CreateComment creates a comment authored by the requester. Creation is a
// global-scope write, gated on the global write permission.
func (s *commentService) CreateComment(ctx context.Context, requesterID string, req dto.CreateCommentRequest) (*domain.Comment, error) {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(subject, domain.ActionWrite, nil) {
		return nil, apperrors.ErrForbidden
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperrors.ErrValidation)
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID: uuid.NewString(),
		Content:   content,
		AuthorID:  subject.UserID,
		ACL:       dto.ToACLEntries(req.Permissions),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment rewrites a comment's content and optionally replaces its ACL.
// Allowed for the author or a grantee holding canWrite; a write grant alone
// suffices, even without canRead.
func (s *commentService) UpdateComment(ctx context.Context, requesterID string, commentID string, req dto.UpdateCommentRequest) (*domain.Comment, error) {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Authorize(subject, domain.ActionWrite, comment) {
		return nil, apperrors.ErrNotFound
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperrors.ErrValidation)
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()
	replaceACL := false
	if req.Permissions != nil {
		comment.ACL = dto.ToACLEntries(*req.Permissions)
		replaceACL = true
	}
	if err := s.commentRepo.UpdateComment(ctx, *comment, replaceACL); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment. Allowed for the author or a grantee
// holding canDelete. The record is retained; the flag never reverts.
func (s *commentService) DeleteComment(ctx context.Context, requesterID string, commentID string) error {
	subject, err := s.authorizer.ResolveSubject(ctx, requesterID)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !s.authorizer.Authorize(subject, domain.ActionDelete, comment) {
		return apperrors.ErrNotFound
	}
	if err := s.commentRepo.MarkCommentDeleted(ctx, comment.CommentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
