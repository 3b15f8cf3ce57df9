package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCommentRepository handles database operations for comments.
type SQLCommentRepository struct {
	db *sqlx.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository.
func NewSQLCommentRepository(db *sqlx.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// CreateComment inserts a new comment and fills in the server-assigned ID.
func (r *SQLCommentRepository) CreateComment(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (article_id, user_name, user_email, content)
	          VALUES (:article_id, :user_name, :user_email, :content)`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to execute create comment query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListCommentsByArticle retrieves all comments for an article, newest first.
func (r *SQLCommentRepository) ListCommentsByArticle(ctx context.Context, articleID int64) ([]*Comment, error) {
	var comments []*Comment
	query := `SELECT id, article_id, user_name, user_email, content, created_at
	          FROM comments WHERE article_id = ? ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment by ID.
func (r *SQLCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no comment found to delete with id %d: %w", id, ErrNotFound)
	}
	return nil
}
