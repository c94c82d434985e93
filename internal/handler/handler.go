package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/RubachokBoss/progress-log/client/internal/service/integration"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	router *chi.Mux
	api    integration.ProgressClient
	center *notify.Center
	logger zerolog.Logger
	opts   Options
}

type Options struct {
	Title                   string
	CookieName              string
	PreserveFiltersOnSubmit bool
	Version                 string
}

func NewHandler(api integration.ProgressClient, center *notify.Center, logger zerolog.Logger, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = "progress_session"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	h := &Handler{
		router: chi.NewRouter(),
		api:    api,
		center: center,
		logger: logger,
		opts:   opts,
	}

	h.setupRoutes()
	return h
}

func (h *Handler) setupRoutes() {
	// Health check
	h.router.Get("/health", h.HealthCheck)
	h.router.Get("/ready", h.ReadyCheck)
	h.router.Get("/live", h.LiveCheck)

	h.setupUIRoutes()
}

func (h *Handler) GetRouter() *chi.Mux {
	return h.router
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
