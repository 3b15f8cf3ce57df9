package service

import (
	"context"
	"strings"
	"unstablenet/internal/data"
)

// CommentRepository defines the interface for database operations on comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *data.Comment) error
	ListCommentsByArticle(ctx context.Context, articleID int64) ([]*data.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// CommentServicer defines the interface for interacting with comments.
type CommentServicer interface {
	ListComments(ctx context.Context, articleID int64) ([]*data.Comment, error)
	CreateComment(ctx context.Context, articleID int64, name, email, content string) (*data.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// CommentService provides business logic for visitor comments.
type CommentService struct {
	repo     CommentRepository
	articles ArticleRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo CommentRepository, articles ArticleRepository) *CommentService {
	return &CommentService{repo: repo, articles: articles}
}

// ListComments returns an article's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, articleID int64) ([]*data.Comment, error) {
	return s.repo.ListCommentsByArticle(ctx, articleID)
}

// CreateComment validates the visitor's input and attaches the comment to an
// existing article. All three fields are required; validation happens before
// any insert is attempted.
func (s *CommentService) CreateComment(ctx context.Context, articleID int64, name, email, content string) (*data.Comment, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	content = strings.TrimSpace(content)
	if name == "" {
		return nil, &ValidationError{Field: "user_name", Message: "name is required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "user_email", Message: "email is required"}
	}
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "comment text is required"}
	}

	// A comment must always reference an existing article.
	if _, err := s.articles.GetArticleByID(ctx, articleID); err != nil {
		return nil, err
	}

	comment := &data.Comment{
		ArticleID: articleID,
		UserName:  name,
		UserEmail: email,
		Content:   content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only editors reach this through the
// router's authorization policies.
func (s *CommentService) DeleteComment(ctx context.Context, id int64) error {
	return s.repo.DeleteComment(ctx, id)
}
