package handler

import (
	"context"
	"net/http"
	"time"
)

const serviceName = "progress-log-client"

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type ReadyResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Services  []ServiceStatus `json:"services,omitempty"`
}

type ServiceStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Version:   h.opts.Version,
	})
}

// ReadyCheck готов, только если API журнала отвечает
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	api := ServiceStatus{Name: "progress-api", Status: "up"}
	status, code := "ready", http.StatusOK

	if err := h.api.Ping(ctx); err != nil {
		api.Status = "down"
		api.Error = err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
		h.logger.Warn().Err(err).Msg("Progress API is not reachable")
	}

	writeJSON(w, code, ReadyResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  []ServiceStatus{api},
	})
}

func (h *Handler) LiveCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}
