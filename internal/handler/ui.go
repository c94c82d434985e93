package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/controller"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/RubachokBoss/progress-log/client/internal/render"
	"github.com/RubachokBoss/progress-log/client/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type operation func(c *controller.LogController, ctx context.Context) error

// withRefetch: операция может завершиться, не перечитав список
const (
	noRefetch   = false
	withRefetch = true
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "on_load", (*controller.LogController).OnLoad, noRefetch)
}

func (h *Handler) FilterLogs(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "apply_filters", (*controller.LogController).ApplyFilters, noRefetch)
}

func (h *Handler) SubmitLog(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "submit_log", (*controller.LogController).SubmitLog, withRefetch)
}

func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "clear_filters", (*controller.LogController).ClearFilters, noRefetch)
}

func (h *Handler) DeleteAllLogs(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "delete_all_logs", (*controller.LogController).DeleteAllLogs, withRefetch)
}

func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sessionID := h.sessionID(w, r)

	if !h.center.Dismiss(sessionID, id) {
		h.logger.Debug().Str("notification_id", id).Msg("Notification already gone")
	}

	// пустой ответ: htmx заменит алерт ничем
	w.WriteHeader(http.StatusOK)
}

// run собирает контроллер на один запрос и рендерит результат.
// Если таблица не перерисована, htmx получает только оверлей, а страница
// остается с последним успешным списком.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, name string, op operation, refetch bool) {
	log := h.requestLogger(r)

	overlay := h.center.Overlay(h.sessionID(w, r))
	state := newPageState(r)

	ctrl := controller.New(h.api, state, state, state, overlay, log, controller.Options{
		PreserveFiltersOnSubmit: h.opts.PreserveFiltersOnSubmit,
	})

	if err := op(ctrl, r.Context()); err != nil {
		// пользователь уже получил уведомление, здесь только журнал
		log.Debug().Err(err).Str("operation", name).Msg("UI operation finished with error")
	}

	if !state.rendered {
		if render.IsHTMX(r) {
			h.renderNotifications(w, r, overlay)
			return
		}
		// полная страница собирается с нуля, таблицу нужно прочитать
		if refetch {
			_ = ctrl.FetchLogs(r.Context(), state.FilterForm())
		}
	}

	h.renderPage(w, r, state, overlay)
}

func (h *Handler) renderNotifications(w http.ResponseWriter, r *http.Request, overlay *notify.Overlay) {
	w.Header().Set("HX-Reswap", "none")
	render.RenderWithLayout(w, r, view.OverlaySwap(overlay.Active(), time.Now()))
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, state *pageState, overlay *notify.Overlay) {
	state.data.Notifications = overlay.Active()
	state.data.Now = time.Now()

	render.RenderWithLayout(w, r, view.Page(state.data), view.Layout(h.opts.Title))
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.opts.CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) requestLogger(r *http.Request) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return h.logger
}
