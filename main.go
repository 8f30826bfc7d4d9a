package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"gitea.com/go-chi/session"
	"github.com/JayL96/user-management/authenticator"
	"github.com/JayL96/user-management/config"
	"github.com/JayL96/user-management/controllers"
	"github.com/JayL96/user-management/database"
	"github.com/JayL96/user-management/logging"
	authmiddleware "github.com/JayL96/user-management/middleware"
	"github.com/JayL96/user-management/repositories"
	"github.com/JayL96/user-management/services"
	"github.com/JayL96/user-management/workflows"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load environment variables from .env file when present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load the env vars: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	// Initialize database
	db, err := database.Initialize(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// Initialize repositories, services, workflows, controllers
	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos)
	userWorkflows := workflows.NewUserWorkflows(srvs.Users, srvs.Logs, logger)
	ctrl := controllers.NewControllers(srvs, userWorkflows)

	// Initialize the OIDC provider when operator sign-in is configured
	var auth authenticator.Provider
	if cfg.AuthEnabled() {
		auth, err = authenticator.NewOpenIDProvider(ctx, authenticator.OpenIDConfig{
			Issuer:       cfg.OIDC.Issuer,
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			CallbackURL:  cfg.OIDC.CallbackURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize OIDC provider")
		}
	}

	r, err := setupRouter(ctrl, auth, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to setup router")
	}

	logger.Info().
		Str("port", cfg.Port).
		Str("database", cfg.DBPath).
		Bool("auth", cfg.AuthEnabled()).
		Msg("user management starting")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, auth authenticator.Provider, cfg *config.Config, logger zerolog.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "user_management_session",
		Secure:         cfg.UseHTTPS,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)
	r.Use(authmiddleware.RequestLogger(logger))

	// PUBLIC ROUTES
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "user-management"}`)
	})
	r.Handle("/metrics", promhttp.Handler())

	if auth != nil {
		r.Get("/login", ctrl.Auth.Login(auth))
		r.Get("/callback", ctrl.Auth.Callback(auth))
		r.Get("/logout", ctrl.Auth.Logout)
	}

	// APPLICATION ROUTES (authentication required when configured)
	r.Group(func(r chi.Router) {
		if auth != nil {
			r.Use(authmiddleware.RequireAuth)
		}

		// User management routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", ctrl.Users.List)
			r.Get("/create", ctrl.Users.Create)
			r.Post("/create", ctrl.Users.CreateSubmit)
			r.Get("/view/{id}", ctrl.Users.View)
			r.Get("/edit/{id}", ctrl.Users.Edit)
			r.Post("/edit/{id}", ctrl.Users.EditSubmit)
			r.Get("/delete/{id}", ctrl.Users.Delete)
			r.Post("/delete/{id}", ctrl.Users.DeleteSubmit)
		})

		// Audit log routes (read-only)
		r.Route("/logs", func(r chi.Router) {
			r.Get("/", ctrl.Logs.Index)
			r.Get("/{id}", ctrl.Logs.Details)
		})
	})

	return r, nil
}
