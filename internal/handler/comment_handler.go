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

// CommentHandler holds the dependencies for the comment endpoints.
type CommentHandler struct {
	comments service.CommentServicer
	log      logger.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments service.CommentServicer, log logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

// commentRequest is the JSON payload for posting a comment.
type commentRequest struct {
	ArticleID int64  `json:"article_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Content   string `json:"content"`
}

func (c *commentRequest) Bind(r *http.Request) error { return nil }

// listHandler returns an article's comments, newest first.
func (h *CommentHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleID, err := strconv.ParseInt(r.URL.Query().Get("article_id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "invalid article_id", Code: http.StatusBadRequest}
	}

	comments, err := h.comments.ListComments(r.Context(), articleID)
	if err != nil {
		return serviceError(err, "failed to list comments")
	}
	if comments == nil {
		comments = []*data.Comment{}
	}
	render.JSON(w, r, comments)
	return nil
}

// createHandler posts a visitor comment.
func (h *CommentHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	payload := &commentRequest{}
	if err := render.Bind(r, payload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}

	comment, err := h.comments.CreateComment(r.Context(), payload.ArticleID, payload.UserName, payload.UserEmail, payload.Content)
	if err != nil {
		return serviceError(err, "failed to create comment")
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
	return nil
}

// deleteHandler removes a comment. Reached only by editors.
func (h *CommentHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "invalid id", Code: http.StatusBadRequest}
	}
	if err := h.comments.DeleteComment(r.Context(), id); err != nil {
		return serviceError(err, "failed to delete comment")
	}
	render.NoContent(w, r)
	return nil
}
