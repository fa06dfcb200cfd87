package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/api/handlers"
	custommiddleware "github.com/hliang/fundglance/internal/api/middleware"
	"github.com/hliang/fundglance/internal/config"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/web"
)

// NewRouter creates and configures the HTTP router
func NewRouter(portfolioService *service.PortfolioService, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Dashboard shell and static assets
	webHandler := web.NewHandler(portfolioService, log)
	r.Get("/", webHandler.Index)
	r.Handle("/static/*", web.Static())

	r.Get("/health", handlers.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.Snapshot)
			r.Post("/import-funds", portfolioHandler.ImportFunds)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(portfolioService)
			r.Post("/", positionHandler.Create)
			r.Patch("/{asset_type}/{code}", positionHandler.Update)
			r.Delete("/{asset_type}/{code}", positionHandler.Delete)
		})
	})

	return r
}
