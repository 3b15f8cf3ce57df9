package handler

import (
	"net/http"
	"unstablenet/internal/logger"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"

	"github.com/go-chi/render"
)

// SubscriberHandler holds the dependencies for the newsletter endpoint.
type SubscriberHandler struct {
	subscribers service.SubscriberServicer
	log         logger.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(subscribers service.SubscriberServicer, log logger.Logger) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers, log: log}
}

// subscribeRequest is the JSON payload for joining the newsletter.
type subscribeRequest struct {
	Email           string `json:"email"`
	PolicyAgreement bool   `json:"policy_agreement"`
}

func (s *subscribeRequest) Bind(r *http.Request) error { return nil }

// subscribeHandler records a newsletter subscription.
func (h *SubscriberHandler) subscribeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	payload := &subscribeRequest{}
	if err := render.Bind(r, payload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}

	if err := h.subscribers.Subscribe(r.Context(), payload.Email, payload.PolicyAgreement); err != nil {
		return serviceError(err, "failed to subscribe")
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"status": "subscribed"})
	return nil
}
