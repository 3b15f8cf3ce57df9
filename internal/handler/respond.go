package handler

import (
	"errors"
	"net/http"
	"unstablenet/internal/data"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"
)

// serviceError maps service-layer errors onto HTTP error responses.
// Validation failures become 400s, missing rows 404s, and everything else
// a generic 500 carrying the given fallback message.
func serviceError(err error, fallback string) *middleware.AppError {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return &middleware.AppError{Error: err, Message: vErr.Error(), Code: http.StatusBadRequest}
	case errors.Is(err, data.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "not found", Code: http.StatusNotFound}
	default:
		return &middleware.AppError{Error: err, Message: fallback, Code: http.StatusInternalServerError}
	}
}
