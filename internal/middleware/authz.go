package middleware

import (
	"net/http"
	"unstablenet/internal/session"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/render"
)

// Authorizer creates a new middleware for authorization.
// It resolves the subject from the session (falling back to "anonymous")
// and checks the request against the Casbin policies.
func Authorizer(e casbin.IEnforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := sm.GetString(r.Context(), "user_subject")
			if subject == "" {
				subject = "anonymous"
			}

			// Add user info to the request context for downstream handlers.
			r = r.WithContext(SetUserInfo(r.Context(), &UserInfo{Subject: subject}))

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "authorization error"})
				return
			}
			if !allowed {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, map[string]string{"error": "forbidden"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
