package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openboard/comment_board_app/internal/apperrors"
	"github.com/openboard/comment_board_app/internal/core/domain"
	portsrepo "github.com/openboard/comment_board_app/internal/core/ports/repositories"
	"github.com/openboard/comment_board_app/internal/models"
)

type PgxCommentRepository struct {
	BaseRepository
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepository {
	return &PgxCommentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CommentRepository = (*PgxCommentRepository)(nil)

func toDomainComment(m models.Comment, acl []models.CommentACL) domain.Comment {
	d := domain.Comment{
		CommentID: m.CommentID,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		IsDeleted: m.IsDeleted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		ACL:       make([]domain.ACLEntry, len(acl)),
	}
	for i, e := range acl {
		d.ACL[i] = domain.ACLEntry{
			UserID:    e.UserID,
			CanRead:   e.CanRead,
			CanWrite:  e.CanWrite,
			CanDelete: e.CanDelete,
		}
	}
	return d
}

// insertACL writes a comment's ACL entries inside tx. Entries upsert on
// (comment_id, user_id), so a duplicate grantee in the input resolves to the
// last entry.
func insertACL(ctx context.Context, tx pgx.Tx, commentID string, acl []domain.ACLEntry) error {
	for _, e := range acl {
		_, err := tx.Exec(ctx, `
			INSERT INTO comment_acl (comment_id, user_id, can_read, can_write, can_delete)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (comment_id, user_id) DO UPDATE SET
				can_read = EXCLUDED.can_read,
				can_write = EXCLUDED.can_write,
				can_delete = EXCLUDED.can_delete;
		`, commentID, e.UserID, e.CanRead, e.CanWrite, e.CanDelete)
		if err != nil {
			// Unknown grantee is caller input, not a storage fault.
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: ACL grantee %s is not a registered user", apperrors.ErrValidation, e.UserID)
			}
			return fmt.Errorf("failed to insert ACL entry for comment %s: %w", commentID, err)
		}
	}
	return nil
}

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO comments (comment_id, content, author_id, is_deleted, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, comment.CommentID, comment.Content, comment.AuthorID, comment.IsDeleted, comment.CreatedAt, comment.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		return insertACL(ctx, tx, comment.CommentID, comment.ACL)
	})
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	var m models.Comment
	err := r.Pool.QueryRow(ctx, `
		SELECT comment_id, content, author_id, is_deleted, created_at, updated_at
		FROM comments
		WHERE comment_id = $1 AND is_deleted = FALSE;
	`, commentID).Scan(&m.CommentID, &m.Content, &m.AuthorID, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment %s: %w", commentID, err)
	}

	aclByComment, err := r.loadACL(ctx, []string{m.CommentID})
	if err != nil {
		return nil, err
	}
	d := toDomainComment(m, aclByComment[m.CommentID])
	return &d, nil
}

// FindReadableComments returns the subject's visible set in one query: never
// soft-deleted, and either authored by the subject, carrying a read grant for
// them, or everything when the subject holds the global read flag.
func (r *PgxCommentRepository) FindReadableComments(ctx context.Context, userID string, includeAll bool) ([]domain.Comment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT c.comment_id, c.content, c.author_id, c.is_deleted, c.created_at, c.updated_at
		FROM comments c
		WHERE c.is_deleted = FALSE
		  AND ($2
		       OR c.author_id = $1
		       OR EXISTS (
		            SELECT 1 FROM comment_acl a
		            WHERE a.comment_id = c.comment_id
		              AND a.user_id = $1
		              AND a.can_read))
		ORDER BY c.created_at DESC;
	`, userID, includeAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query readable comments: %w", err)
	}
	defer rows.Close()

	var ms []models.Comment
	var ids []string
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(&m.CommentID, &m.Content, &m.AuthorID, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		ms = append(ms, m)
		ids = append(ids, m.CommentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating comment rows: %w", err)
	}

	aclByComment, err := r.loadACL(ctx, ids)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(ms))
	for i, m := range ms {
		comments[i] = toDomainComment(m, aclByComment[m.CommentID])
	}
	return comments, nil
}

func (r *PgxCommentRepository) loadACL(ctx context.Context, commentIDs []string) (map[string][]models.CommentACL, error) {
	out := make(map[string][]models.CommentACL, len(commentIDs))
	if len(commentIDs) == 0 {
		return out, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT comment_id, user_id, can_read, can_write, can_delete
		FROM comment_acl
		WHERE comment_id = ANY($1)
		ORDER BY comment_id, user_id;
	`, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query comment ACLs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.CommentACL
		if err := rows.Scan(&e.CommentID, &e.UserID, &e.CanRead, &e.CanWrite, &e.CanDelete); err != nil {
			return nil, fmt.Errorf("failed to scan ACL row: %w", err)
		}
		out[e.CommentID] = append(out[e.CommentID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating ACL rows: %w", err)
	}
	return out, nil
}

func (r *PgxCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment, replaceACL bool) error {
	return r.runInTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE comments SET content = $2, updated_at = $3
			WHERE comment_id = $1 AND is_deleted = FALSE;
		`, comment.CommentID, comment.Content, comment.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update comment %s: %w", comment.CommentID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		if !replaceACL {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM comment_acl WHERE comment_id = $1;`, comment.CommentID); err != nil {
			return fmt.Errorf("failed to clear ACL for comment %s: %w", comment.CommentID, err)
		}
		return insertACL(ctx, tx, comment.CommentID, comment.ACL)
	})
}

func (r *PgxCommentRepository) MarkCommentDeleted(ctx context.Context, commentID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE comments SET is_deleted = TRUE
		WHERE comment_id = $1 AND is_deleted = FALSE;
	`, commentID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete comment %s: %w", commentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
