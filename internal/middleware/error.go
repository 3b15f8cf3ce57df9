package middleware

import (
	"fmt"
	"net/http"
	"unstablenet/internal/logger"

	"github.com/go-chi/render"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors and panics into JSON
// error responses.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, map[string]string{"error": "internal server error"})
				}
			}()

			if err := next(w, r); err != nil {
				log.Error(err.Error, err.Message)
				render.Status(r, err.Code)
				render.JSON(w, r, map[string]string{"error": err.Message})
			}
		})
	}
}
