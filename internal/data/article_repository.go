package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SQLArticleRepository is a concrete implementation of the ArticleRepository
// interface using sqlx.
type SQLArticleRepository struct {
	db *sqlx.DB
}

// NewSQLArticleRepository creates a new SQLArticleRepository.
func NewSQLArticleRepository(db *sqlx.DB) *SQLArticleRepository {
	return &SQLArticleRepository{db: db}
}

// CreateArticle inserts a new article and fills in the server-assigned ID.
func (r *SQLArticleRepository) CreateArticle(ctx context.Context, article *Article) error {
	query := `INSERT INTO articles (slug, title, subtitle, content, author, tag, image_url, read_time, published_at)
	          VALUES (:slug, :title, :subtitle, :content, :author, :tag, :image_url, :read_time, :published_at)`
	res, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("failed to execute create article query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted article id: %w", err)
	}
	article.ID = id
	return nil
}

// GetArticleBySlug retrieves a single article by its slug.
func (r *SQLArticleRepository) GetArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	var article Article
	query := `SELECT id, slug, title, subtitle, content, author, tag, image_url, read_time, published_at, created_at
	          FROM articles WHERE slug = ?`
	if err := r.db.GetContext(ctx, &article, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article with slug '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &article, nil
}

// GetArticleByID retrieves a single article by its numeric ID.
func (r *SQLArticleRepository) GetArticleByID(ctx context.Context, id int64) (*Article, error) {
	var article Article
	query := `SELECT id, slug, title, subtitle, content, author, tag, image_url, read_time, published_at, created_at
	          FROM articles WHERE id = ?`
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}
	return &article, nil
}

// UpdateArticle updates an existing article. The slug column is deliberately
// absent from the SET list: slugs are immutable once assigned.
func (r *SQLArticleRepository) UpdateArticle(ctx context.Context, article *Article) error {
	query := `UPDATE articles SET title = :title, subtitle = :subtitle, content = :content, author = :author,
	          tag = :tag, image_url = :image_url, read_time = :read_time, published_at = :published_at
	          WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no article found to update with id %d: %w", article.ID, ErrNotFound)
	}
	return nil
}

// ListArticles retrieves all articles ordered by published timestamp
// descending (newest first).
func (r *SQLArticleRepository) ListArticles(ctx context.Context) ([]*Article, error) {
	var articles []*Article
	query := `SELECT id, slug, title, subtitle, content, author, tag, image_url, read_time, published_at, created_at
	          FROM articles ORDER BY published_at DESC`
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// DeleteArticle removes an article by ID. Its comments are removed in the
// same transaction so a comment can never outlive its article.
func (r *SQLArticleRepository) DeleteArticle(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete article comments: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no article found to delete with id %d: %w", id, ErrNotFound)
	}
	return tx.Commit()
}
