package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unstablenet/internal/auth"
	"unstablenet/internal/cache"
	"unstablenet/internal/config"
	"unstablenet/internal/data"
	"unstablenet/internal/handler"
	"unstablenet/internal/logger"
	"unstablenet/internal/mail"
	"unstablenet/internal/middleware"
	"unstablenet/internal/service"
	"unstablenet/internal/storage"
	"unstablenet/web"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

func main() {
	// --- Configuration Loading ---
	// A local .env file is optional; real deployments set the environment.
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Session.Lifetime <= 0 {
		log.Fatal(errors.New("session lifetime must be positive"), "Please set UNSTABLE_SESSION_LIFETIME to a positive number of hours.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var authenticator *auth.Authenticator
	if cfg.OIDC.IssuerURL != "" {
		authenticator, err = auth.NewAuthenticator(&cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
	}
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	gate := auth.NewGate(auth.NewCasbinRoleChecker(enforcer), sessionManager.Lifetime, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	articleCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer articleCache.Close()
	log.Info("Cache initialized.")

	// --- Media Storage ---
	mediaStore, err := storage.NewDiskStore(cfg.Media)
	if err != nil {
		log.Fatal(err, "Failed to initialize media storage")
	}

	// --- Repositories ---
	articleRepository := data.NewSQLArticleRepository(db)
	commentRepository := data.NewSQLCommentRepository(db)
	subscriberRepository := data.NewSQLSubscriberRepository(db)
	coverRepository := data.NewSQLCoverRepository(db)
	userRepository := data.NewSQLUserRepository(db)

	// --- Outbound Email ---
	// Without SMTP configuration the site runs fine, just silently.
	var notifier *mail.SubscriberNotifier
	if cfg.SMTP.Host != "" {
		sender := mail.NewSMTPMailer(cfg.SMTP)
		notifier = mail.NewSubscriberNotifier(sender, subscriberRepository, cfg.Server, log)
	} else {
		log.Warn("SMTP not configured; notification and welcome emails are disabled")
	}

	// --- Services ---
	var articleNotifier service.Notifier
	var welcomeMailer service.WelcomeMailer
	if notifier != nil {
		articleNotifier = notifier
		welcomeMailer = notifier
	}
	articleService := service.NewArticleService(articleRepository, articleCache, articleNotifier, log)
	commentService := service.NewCommentService(commentRepository, articleRepository)
	subscriberService := service.NewSubscriberService(subscriberRepository, welcomeMailer)
	coverService := service.NewCoverService(coverRepository, mediaStore)
	pageService := service.NewStaticPageService(web.PagesFS, articleCache)

	// --- Handlers and Router ---
	deps := handler.RouterDeps{
		Articles:    handler.NewArticleHandler(articleService, log),
		Comments:    handler.NewCommentHandler(commentService, log),
		Subscribers: handler.NewSubscriberHandler(subscriberService, log),
		Covers:      handler.NewCoverHandler(coverService, log),
		Pages:       handler.NewPageHandler(pageService, log),
		Auth:        handler.NewAuthHandler(userRepository, sessionManager, gate, authenticator, log),
		Seo:         handler.NewSeoHandler(articleService, cfg.Server),

		Session: sessionManager.LoadAndSave,
		Authz:   middleware.Authorizer(enforcer, sessionManager),
		Errors:  middleware.Error(log),

		MediaDir:        cfg.Media.Dir,
		MediaPublicPath: cfg.Media.PublicPath,
	}
	router := handler.NewRouter(deps)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
