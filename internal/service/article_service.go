package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unstablenet/internal/cache"
	"unstablenet/internal/data"
	"unstablenet/internal/logger"
	"unstablenet/internal/sanitize"
)

// ArticleRepository defines the interface for database operations on articles.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *data.Article) error
	GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error)
	GetArticleByID(ctx context.Context, id int64) (*data.Article, error)
	UpdateArticle(ctx context.Context, article *data.Article) error
	ListArticles(ctx context.Context) ([]*data.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
}

// Notifier delivers best-effort email side effects. Implementations log
// their own failures; callers never see or act on them.
type Notifier interface {
	NotifyNewArticle(article *data.Article)
}

// ArticleFields carries the editor-supplied fields of a create or update.
type ArticleFields struct {
	Title    string
	Subtitle string
	Content  string
	Author   string
	Tag      string
	ImageURL string
	ReadTime string
}

// ArticleServicer defines the interface for interacting with articles.
type ArticleServicer interface {
	ListArticles(ctx context.Context) ([]*data.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error)
	CreateArticle(ctx context.Context, fields ArticleFields) (*data.Article, error)
	UpdateArticle(ctx context.Context, id int64, fields ArticleFields) (*data.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	RelatedArticles(ctx context.Context, article *data.Article) ([]*data.Article, error)
}

// ArticleService provides business logic for managing articles.
type ArticleService struct {
	repo     ArticleRepository
	cache    *cache.Cache
	notifier Notifier
	slugger  *Slugger
	log      logger.Logger
}

// NewArticleService creates a new ArticleService. The notifier may be nil
// when outbound email is disabled.
func NewArticleService(repo ArticleRepository, c *cache.Cache, notifier Notifier, log logger.Logger) *ArticleService {
	return &ArticleService{
		repo:     repo,
		cache:    c,
		notifier: notifier,
		slugger:  NewSlugger(),
		log:      log,
	}
}

// CreateArticle validates and sanitizes the fields, assigns a unique slug,
// persists the article, and kicks off the subscriber notification. The
// notification is fire-and-forget: a failure is logged by the notifier and
// never rolls back the already-committed article.
func (s *ArticleService) CreateArticle(ctx context.Context, fields ArticleFields) (*data.Article, error) {
	if err := validateArticleFields(fields); err != nil {
		return nil, err
	}

	article := &data.Article{
		Slug:        s.slugger.Slug(fields.Title),
		Title:       fields.Title,
		Subtitle:    fields.Subtitle,
		Content:     sanitize.Article(fields.Content),
		Author:      fields.Author,
		Tag:         fields.Tag,
		ImageURL:    fields.ImageURL,
		ReadTime:    fields.ReadTime,
		PublishedAt: time.Now(),
	}

	if err := s.repo.CreateArticle(ctx, article); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.NotifyNewArticle(article)
	}
	return article, nil
}

// UpdateArticle re-sanitizes the content and updates the row. The slug is
// left untouched: it is immutable once assigned.
func (s *ArticleService) UpdateArticle(ctx context.Context, id int64, fields ArticleFields) (*data.Article, error) {
	if err := validateArticleFields(fields); err != nil {
		return nil, err
	}

	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article.Title = fields.Title
	article.Subtitle = fields.Subtitle
	article.Content = sanitize.Article(fields.Content)
	article.Author = fields.Author
	article.Tag = fields.Tag
	article.ImageURL = fields.ImageURL
	article.ReadTime = fields.ReadTime

	if err := s.repo.UpdateArticle(ctx, article); err != nil {
		return nil, err
	}
	s.invalidateRelated(article.ID)
	return article, nil
}

// DeleteArticle removes the article; the repository cascades to comments.
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.invalidateRelated(id)
	return nil
}

// ListArticles returns all articles, newest first.
func (s *ArticleService) ListArticles(ctx context.Context) ([]*data.Article, error) {
	return s.repo.ListArticles(ctx)
}

// GetArticleBySlug retrieves a single article by its slug.
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error) {
	return s.repo.GetArticleBySlug(ctx, slug)
}

// RelatedArticles returns up to three articles to show below the given one,
// consulting the cache before recomputing from the full article list.
func (s *ArticleService) RelatedArticles(ctx context.Context, article *data.Article) ([]*data.Article, error) {
	key := relatedCacheKey(article.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(key); err == nil && cached != nil {
			var related []*data.Article
			if err := json.Unmarshal(cached, &related); err == nil {
				return related, nil
			}
			// Unreadable cache entries are treated as misses.
		}
	}

	all, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	related := RelatedArticles(article, all, relatedLimit)

	if s.cache != nil {
		if encoded, err := json.Marshal(related); err == nil {
			if err := s.cache.Set(key, encoded, 5*time.Minute); err != nil {
				s.log.Error(err, "Failed to cache related articles")
			}
		}
	}
	return related, nil
}

func (s *ArticleService) invalidateRelated(id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(relatedCacheKey(id)); err != nil {
		s.log.Error(err, "Failed to invalidate related-articles cache")
	}
}

func relatedCacheKey(id int64) string {
	return fmt.Sprintf("related:%d", id)
}

func validateArticleFields(fields ArticleFields) error {
	if fields.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if fields.Tag == "" {
		return &ValidationError{Field: "tag", Message: "tag is required"}
	}
	return nil
}
