package handler

import (
	"net/http"
	"strconv"
	"unstablenet/internal/data"
	"unstablenet/internal/logger"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ArticleHandler holds the dependencies for the article endpoints.
type ArticleHandler struct {
	articles service.ArticleServicer
	log      logger.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles service.ArticleServicer, log logger.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, log: log}
}

// articleRequest is the JSON payload for creating or updating an article.
type articleRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Tag      string `json:"tag"`
	ImageURL string `json:"image_url"`
	ReadTime string `json:"read_time"`
}

func (a *articleRequest) Bind(r *http.Request) error { return nil }

func (a *articleRequest) fields() service.ArticleFields {
	return service.ArticleFields{
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Content:  a.Content,
		Author:   a.Author,
		Tag:      a.Tag,
		ImageURL: a.ImageURL,
		ReadTime: a.ReadTime,
	}
}

// listHandler returns all articles, newest first.
func (h *ArticleHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		return serviceError(err, "failed to list articles")
	}
	if articles == nil {
		articles = []*data.Article{}
	}
	render.JSON(w, r, articles)
	return nil
}

// getHandler returns a single article by slug, together with its related
// articles for the "you may also like" strip.
func (h *ArticleHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")
	article, err := h.articles.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		return serviceError(err, "failed to load article")
	}

	related, err := h.articles.RelatedArticles(r.Context(), article)
	if err != nil {
		// The article itself is the payload; a broken related lookup
		// degrades to an empty strip.
		h.log.Error(err, "Failed to compute related articles")
		related = nil
	}
	if related == nil {
		related = []*data.Article{}
	}

	render.JSON(w, r, map[string]interface{}{
		"article": article,
		"related": related,
	})
	return nil
}

// createHandler creates a new article from the editor's payload.
func (h *ArticleHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	payload := &articleRequest{}
	if err := render.Bind(r, payload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}

	article, err := h.articles.CreateArticle(r.Context(), payload.fields())
	if err != nil {
		return serviceError(err, "failed to create article")
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, article)
	return nil
}

// updateHandler updates an existing article. The slug never changes.
func (h *ArticleHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	payload := &articleRequest{}
	if err := render.Bind(r, payload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}

	article, err := h.articles.UpdateArticle(r.Context(), id, payload.fields())
	if err != nil {
		return serviceError(err, "failed to update article")
	}
	render.JSON(w, r, article)
	return nil
}

// deleteHandler removes an article and its comments.
func (h *ArticleHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := idParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.articles.DeleteArticle(r.Context(), id); err != nil {
		return serviceError(err, "failed to delete article")
	}
	render.NoContent(w, r)
	return nil
}

func idParam(r *http.Request) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &middleware.AppError{Error: err, Message: "invalid id", Code: http.StatusBadRequest}
	}
	return id, nil
}
