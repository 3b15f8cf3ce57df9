package handler

import (
	"net/http"
	"unstablenet/internal/logger"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// PageHandler serves the site's informational pages.
type PageHandler struct {
	pages service.StaticPageServicer
	log   logger.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(pages service.StaticPageServicer, log logger.Logger) *PageHandler {
	return &PageHandler{pages: pages, log: log}
}

// getHandler renders the named page to sanitized HTML wrapped in JSON.
func (h *PageHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	name := chi.URLParam(r, "name")
	html, err := h.pages.RenderPage(name)
	if err != nil {
		return serviceError(err, "failed to render page")
	}
	render.JSON(w, r, map[string]string{
		"name": name,
		"html": html,
	})
	return nil
}
