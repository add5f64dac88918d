package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sportsday/sportsday/internal/model"
	"github.com/sportsday/sportsday/internal/services/auth"
	"github.com/sportsday/sportsday/internal/services/schedule"
	"github.com/sportsday/sportsday/internal/web/handler"
	"github.com/sportsday/sportsday/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	ScheduleService *schedule.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	adminMiddleware := middleware.RequireRole(model.RoleAdmin)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	adminHandler := handler.NewAdminHandler(cfg.ScheduleService)
	playerHandler := handler.NewPlayerHandler(cfg.ScheduleService)
	reportsHandler := handler.NewReportsHandler(cfg.ScheduleService)

	// Public routes (optional auth so logged-in users skip the forms)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", authHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/player-dashboard", playerHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/create-session", playerHandler.CreateSession).Methods(http.MethodPost)
	protected.HandleFunc("/join-session", playerHandler.JoinSession).Methods(http.MethodPost)
	protected.HandleFunc("/reports", reportsHandler.Reports).Methods(http.MethodGet)

	// Admin routes (require auth + admin role)
	admin := r.NewRoute().Subrouter()
	admin.Use(flashMiddleware)
	admin.Use(authMiddleware)
	admin.Use(adminMiddleware)
	admin.HandleFunc("/admin-dashboard", adminHandler.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/create-sport", adminHandler.CreateSport).Methods(http.MethodPost)
	admin.HandleFunc("/delete-session", adminHandler.DeleteSession).Methods(http.MethodPost)

	return r
}
