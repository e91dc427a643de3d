// Package rest exposes the analysis pipeline over HTTP.
package rest

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ewilliams-labs/vibematch/internal/core/ports"
	"github.com/ewilliams-labs/vibematch/internal/core/services"
)

// Handler wires the HTTP routes to the core service.
type Handler struct {
	svc    *services.Orchestrator
	tokens ports.TokenSource
	router chi.Router
	logger *log.Logger
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, tokens ports.TokenSource, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		svc:    svc,
		tokens: tokens,
		router: chi.NewRouter(),
		logger: logger,
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(requestID)
	h.router.Use(h.logRequests)
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	h.router.Get("/health", h.HealthCheck)
	h.router.Post("/song", h.AnalyzeSong)
	h.router.Get("/spotify-token", h.SpotifyToken)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
