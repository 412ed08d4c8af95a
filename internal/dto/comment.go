package dto

import (
	"time"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// ACLEntryRequest grants one user per-comment rights. Omitted flags default
// to false; the flags are independent of one another.
type ACLEntryRequest struct {
	UserID    string `json:"userId" binding:"required"`
	CanRead   bool   `json:"canRead"`
	CanWrite  bool   `json:"canWrite"`
	CanDelete bool   `json:"canDelete"`
}

// CreateCommentRequest creates a new comment, optionally with initial grants.
type CreateCommentRequest struct {
	Content     string            `json:"content" binding:"required"`
	Permissions []ACLEntryRequest `json:"permissions"`
}

// UpdateCommentRequest rewrites a comment's content and, if Permissions is
// present, replaces its ACL wholesale.
type UpdateCommentRequest struct {
	Content     string             `json:"content" binding:"required"`
	Permissions *[]ACLEntryRequest `json:"permissions"`
}

// ACLEntryResponse is the external shape of one grant.
type ACLEntryResponse struct {
	UserID    string `json:"userId"`
	CanRead   bool   `json:"canRead"`
	CanWrite  bool   `json:"canWrite"`
	CanDelete bool   `json:"canDelete"`
}

// CommentResponse is the external shape of a comment.
type CommentResponse struct {
	ID          string             `json:"id"`
	Content     string             `json:"content"`
	AuthorID    string             `json:"authorId"`
	Permissions []ACLEntryResponse `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ToCommentResponse converts a domain.Comment to its external shape.
func ToCommentResponse(comment *domain.Comment) CommentResponse {
	acl := make([]ACLEntryResponse, len(comment.ACL))
	for i, e := range comment.ACL {
		acl[i] = ACLEntryResponse{
			UserID:    e.UserID,
			CanRead:   e.CanRead,
			CanWrite:  e.CanWrite,
			CanDelete: e.CanDelete,
		}
	}
	return CommentResponse{
		ID:          comment.CommentID,
		Content:     comment.Content,
		AuthorID:    comment.AuthorID,
		Permissions: acl,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}

// ListCommentsResponse wraps the readable-comment listing.
type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// ToListCommentsResponse converts a slice of domain comments.
func ToListCommentsResponse(comments []domain.Comment) ListCommentsResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = ToCommentResponse(&comments[i])
	}
	return ListCommentsResponse{Comments: out}
}

// ToACLEntries converts request grants to domain entries, preserving order so
// duplicate grantees resolve last-write-wins.
func ToACLEntries(entries []ACLEntryRequest) []domain.ACLEntry {
	out := make([]domain.ACLEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.ACLEntry{
			UserID:    e.UserID,
			CanRead:   e.CanRead,
			CanWrite:  e.CanWrite,
			CanDelete: e.CanDelete,
		}
	}
	return out
}
