package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"
	"unstablenet/internal/data"
	"unstablenet/internal/logger"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"

	"github.com/go-chi/render"
)

// maxCoverUpload caps cover image uploads at 8 MiB.
const maxCoverUpload = 8 << 20

// CoverHandler holds the dependencies for the cover image endpoints.
type CoverHandler struct {
	covers service.CoverServicer
	log    logger.Logger
}

// NewCoverHandler creates a new CoverHandler.
func NewCoverHandler(covers service.CoverServicer, log logger.Logger) *CoverHandler {
	return &CoverHandler{covers: covers, log: log}
}

// getHandler returns either a single slot (category+name) or every slot in a
// category. A slot with no image yet answers 404.
func (h *CoverHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category := r.URL.Query().Get("category")
	name := r.URL.Query().Get("name")
	if category == "" {
		return &middleware.AppError{
			Error:   fmt.Errorf("missing category parameter"),
			Message: "category is required",
			Code:    http.StatusBadRequest,
		}
	}

	if name == "" {
		covers, err := h.covers.ListCovers(r.Context(), category)
		if err != nil {
			return serviceError(err, "failed to list covers")
		}
		if covers == nil {
			covers = []*data.Cover{}
		}
		render.JSON(w, r, covers)
		return nil
	}

	cover, err := h.covers.GetCover(r.Context(), category, name)
	if err != nil {
		return serviceError(err, "failed to load cover")
	}
	if cover == nil {
		return &middleware.AppError{
			Error:   fmt.Errorf("cover %s/%s not set", category, name),
			Message: "not found",
			Code:    http.StatusNotFound,
		}
	}
	render.JSON(w, r, cover)
	return nil
}

// setHandler replaces a slot's image from a multipart upload. The form
// carries "category", "name", and the image under "file".
func (h *CoverHandler) setHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseMultipartForm(maxCoverUpload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid multipart form", Code: http.StatusBadRequest}
	}
	category := r.FormValue("category")
	name := r.FormValue("name")

	file, header, err := r.FormFile("file")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "an image file is required", Code: http.StatusBadRequest}
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, maxCoverUpload))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to read upload", Code: http.StatusInternalServerError}
	}

	path := coverPath(category, name, header.Filename)
	cover, err := h.covers.SetCover(r.Context(), category, name, path, contents)
	if err != nil {
		return serviceError(err, "failed to store cover")
	}
	render.JSON(w, r, cover)
	return nil
}

// coverPath builds a stable-but-unique media path so a replaced image never
// collides with a cached copy of its predecessor.
func coverPath(category, name, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("covers/%s/%s-%d%s", category, name, time.Now().UnixMilli(), ext)
}
