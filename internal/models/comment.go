package models

import "time"

// Comment is the database row shape for a board comment.
type Comment struct {
	CommentID string    `db:"comment_id"`
	Content   string    `db:"content"`
	AuthorID  string    `db:"author_id"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CommentACL is one grantee row of a comment's access-control list. The
// (comment_id, user_id) primary key keeps one effective row per grantee;
// writes upsert, so the latest grant wins.
type CommentACL struct {
	CommentID string `db:"comment_id"`
	UserID    string `db:"user_id"`
	CanRead   bool   `db:"can_read"`
	CanWrite  bool   `db:"can_write"`
	CanDelete bool   `db:"can_delete"`
}
