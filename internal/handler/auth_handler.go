package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"
	"unstablenet/internal/auth"
	"unstablenet/internal/data"
	"unstablenet/internal/logger"
	"unstablenet/internal/middleware"
	"unstablenet/internal/session"

	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"
)

// UserGetter resolves login credentials against the user store.
type UserGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
}

// AuthHandler holds the dependencies for the authentication handlers. The
// OIDC authenticator is optional; when nil only password login is offered.
type AuthHandler struct {
	users    UserGetter
	sessions session.Manager
	gate     *auth.Gate
	sso      *auth.Authenticator
	log      logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users UserGetter, sessions session.Manager, gate *auth.Gate, sso *auth.Authenticator, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		gate:     gate,
		sso:      sso,
		log:      log,
	}
}

// loginRequest is the JSON payload for password login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l *loginRequest) Bind(r *http.Request) error { return nil }

// sessionResponse describes the caller's session to the frontend. Editing
// stays false while the role lookup is pending; the frontend polls the
// session endpoint until pending clears.
type sessionResponse struct {
	Authenticated  bool   `json:"authenticated"`
	Subject        string `json:"subject,omitempty"`
	EditingEnabled bool   `json:"editing_enabled"`
	Pending        bool   `json:"pending"`
}

// loginHandler verifies the password and opens a session. The editing-role
// lookup starts in the background; the response never waits for it.
func (h *AuthHandler) loginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	payload := &loginRequest{}
	if err := render.Bind(r, payload); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}

	user, err := h.users.GetUserByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return invalidCredentials(err)
		}
		return serviceError(err, "login failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return invalidCredentials(err)
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "login failed", Code: http.StatusInternalServerError}
	}
	h.sessions.Put(r.Context(), "user_subject", user.Email)
	h.gate.SignIn(user.Email)

	editing, pending := h.gate.Status(user.Email)
	render.JSON(w, r, sessionResponse{
		Authenticated:  true,
		Subject:        user.Email,
		EditingEnabled: editing,
		Pending:        pending,
	})
	return nil
}

func invalidCredentials(err error) *middleware.AppError {
	return &middleware.AppError{Error: err, Message: "invalid email or password", Code: http.StatusUnauthorized}
}

// logoutHandler closes the session. The gate is cleared before the session
// is destroyed, so editing is revoked even if the destroy fails.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	subject := h.sessions.GetString(r.Context(), "user_subject")
	if subject != "" {
		h.gate.SignOut(subject)
	}
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "logout failed", Code: http.StatusInternalServerError}
	}
	render.JSON(w, r, sessionResponse{})
	return nil
}

// sessionHandler reports the caller's authentication and editing state.
func (h *AuthHandler) sessionHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	if !userInfo.Authenticated() {
		render.JSON(w, r, sessionResponse{})
		return nil
	}

	editing, pending := h.gate.Status(userInfo.Subject)
	render.JSON(w, r, sessionResponse{
		Authenticated:  true,
		Subject:        userInfo.Subject,
		EditingEnabled: editing,
		Pending:        pending,
	})
	return nil
}

// ssoLoginHandler redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) ssoLoginHandler(w http.ResponseWriter, r *http.Request) {
	if h.sso == nil {
		http.Error(w, "single sign-on is not configured", http.StatusNotFound)
		return
	}
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.sso.AuthCodeURL(state), http.StatusFound)
}

// ssoCallbackHandler is the redirect URL for the OIDC provider.
// It handles the code exchange and token verification, then opens the same
// kind of session as password login.
func (h *AuthHandler) ssoCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if h.sso == nil {
		http.Error(w, "single sign-on is not configured", http.StatusNotFound)
		return
	}

	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.sso.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// Verify the ID Token's signature and claims.
	idToken, err := h.sso.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		http.Error(w, "ID Token carries no email claim", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.sessions.Put(r.Context(), "user_subject", claims.Email)
	h.gate.SignIn(claims.Email)

	http.Redirect(w, r, "/", http.StatusFound)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
