package handler

import (
	"net/http"
	appmw "unstablenet/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Articles    *ArticleHandler
	Comments    *CommentHandler
	Subscribers *SubscriberHandler
	Covers      *CoverHandler
	Pages       *PageHandler
	Auth        *AuthHandler
	Seo         *SeoHandler

	Session func(http.Handler) http.Handler
	Authz   func(http.Handler) http.Handler
	Errors  func(appmw.AppHandler) http.Handler

	MediaDir        string
	MediaPublicPath string
}

// NewRouter creates and configures a new chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(deps.Session)
	r.Use(deps.Authz)

	wrap := deps.Errors

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/articles", wrap(deps.Articles.listHandler))
		r.Method(http.MethodPost, "/articles", wrap(deps.Articles.createHandler))
		r.Method(http.MethodGet, "/articles/{slug}", wrap(deps.Articles.getHandler))
		r.Method(http.MethodPut, "/articles/{id}", wrap(deps.Articles.updateHandler))
		r.Method(http.MethodDelete, "/articles/{id}", wrap(deps.Articles.deleteHandler))

		r.Method(http.MethodGet, "/comments", wrap(deps.Comments.listHandler))
		r.Method(http.MethodPost, "/comments", wrap(deps.Comments.createHandler))
		r.Method(http.MethodDelete, "/comments/{id}", wrap(deps.Comments.deleteHandler))

		r.Method(http.MethodPost, "/subscribers", wrap(deps.Subscribers.subscribeHandler))

		r.Method(http.MethodGet, "/covers", wrap(deps.Covers.getHandler))
		r.Method(http.MethodPut, "/covers", wrap(deps.Covers.setHandler))

		r.Method(http.MethodGet, "/pages/{name}", wrap(deps.Pages.getHandler))

		r.Method(http.MethodPost, "/auth/login", wrap(deps.Auth.loginHandler))
		r.Method(http.MethodPost, "/auth/logout", wrap(deps.Auth.logoutHandler))
		r.Method(http.MethodGet, "/session", wrap(deps.Auth.sessionHandler))
	})

	// Optional single-sign-on routes.
	r.Get("/auth/login", deps.Auth.ssoLoginHandler)
	r.Get("/auth/callback", deps.Auth.ssoCallbackHandler)

	// Uploaded media.
	if deps.MediaDir != "" {
		fileServer := http.StripPrefix(deps.MediaPublicPath+"/", http.FileServer(http.Dir(deps.MediaDir)))
		r.Get(deps.MediaPublicPath+"/*", fileServer.ServeHTTP)
	}

	r.Get("/sitemap.xml", deps.Seo.sitemapHandler)
	r.Get("/robots.txt", deps.Seo.robotsHandler)

	return r
}
