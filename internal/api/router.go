package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DavidRSR1/verifica/internal/api/handlers"
	custommiddleware "github.com/DavidRSR1/verifica/internal/api/middleware"
	"github.com/DavidRSR1/verifica/internal/config"
	"github.com/DavidRSR1/verifica/internal/service"
	"github.com/DavidRSR1/verifica/internal/session"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, catalogService *service.CatalogService, sess *session.Session, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		catalogHandler := handlers.NewCatalogHandler(catalogService)
		r.Get("/providers", catalogHandler.Providers)
		r.Get("/{provider}/postos", catalogHandler.Stations)

		r.Route("/panel", func(r chi.Router) {
			panelHandler := handlers.NewPanelHandler(sess, catalogService)
			r.Get("/{section}", panelHandler.Table)
			r.Post("/{section}/sort", panelHandler.Sort)
		})
	})

	return r
}
