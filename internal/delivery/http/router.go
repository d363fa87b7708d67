package http

import (
	"net/http"

	"shortener/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter creates a new Chi router with all middleware and routes
func NewRouter(handler *Handler, authHandler *AuthHandler, auth *usecase.AuthService, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(AuthMiddleware(auth))

	r.Get("/healthz", handler.Health)

	// Root-level redirect route
	r.Get("/{code}", handler.Redirect)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Post("/links", handler.CreateLink)
		r.Get("/links", handler.ListLinks)
		r.Delete("/links/{id}", handler.DeleteLink)
	})

	return r
}
