// Package web serves the dashboard shell and its static assets, embedded in
// the binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/api/response"
	"github.com/hliang/fundglance/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Handler renders the dashboard shell with the current refresh interval and
// base currency injected into the page.
type Handler struct {
	portfolioService *service.PortfolioService
	template         *template.Template
	log              zerolog.Logger
}

// NewHandler creates a dashboard handler with the parsed shell template.
func NewHandler(portfolioService *service.PortfolioService, log zerolog.Logger) *Handler {
	return &Handler{
		portfolioService: portfolioService,
		template:         template.Must(template.ParseFS(templateFS, "templates/index.html")),
		log:              log.With().Str("component", "web").Logger(),
	}
}

type indexData struct {
	RefreshSeconds int
	BaseCurrency   string
}

// Index handles GET / and renders the dashboard shell.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	config, err := h.portfolioService.LoadConfig()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load portfolio", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, indexData{
		RefreshSeconds: config.RefreshSeconds,
		BaseCurrency:   config.BaseCurrency,
	}); err != nil {
		h.log.Error().Err(err).Msg("failed to render dashboard")
	}
}

// Static returns the handler for the embedded /static assets.
func Static() http.Handler {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets)))
}
