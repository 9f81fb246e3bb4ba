package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"diary/internal/services/auth"
	"diary/internal/services/cards"
	"diary/internal/web/handler"
	"diary/internal/web/middleware"
	"diary/internal/web/view"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	CardService *cards.Service
	Renderer    *view.Renderer
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

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Renderer)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Renderer)
	cardsHandler := handler.NewCardsHandler(cfg.CardService, cfg.Renderer)

	// Public routes (optional auth so the nav can show who is logged in)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/home", homeHandler.Home).Methods(http.MethodGet, http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/login/", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login/", authHandler.Login).Methods(http.MethodPost)

	// Protected routes (require auth, redirect to login otherwise)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/", cardsHandler.Index).Methods(http.MethodGet)
	protected.HandleFunc("/card/{id}", cardsHandler.Detail).Methods(http.MethodGet)
	protected.HandleFunc("/form_create", cardsHandler.CreateForm).Methods(http.MethodGet)
	protected.HandleFunc("/form_create", cardsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/protected", authHandler.Protected).Methods(http.MethodGet)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	return r
}
