package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) setupUIRoutes() {
	h.router.Get("/", h.Index)

	h.router.Route("/ui", func(r chi.Router) {
		r.Get("/logs", h.FilterLogs)
		r.Post("/logs", h.SubmitLog)
		r.Post("/logs/delete", h.DeleteAllLogs)
		r.Post("/filters/clear", h.ClearFilters)
		r.Delete("/notifications/{id}", h.DismissNotification)
	})
}

// MountAPIProxy отдает JSON API журнала под тем же origin (prefix вырезается прокси)
func (h *Handler) MountAPIProxy(prefix string, proxy http.Handler) {
	h.router.Mount(prefix, proxy)
}
