package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/RubachokBoss/progress-log/client/internal/service/integration"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	mu      sync.Mutex
	calls   []string
	filters []models.FilterCriteria
	created []models.LogEntry
	logs    []models.LogEntry
	pingErr error

	createErr error
	listErr   error
}

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAPI) CreateLog(_ context.Context, entry models.LogEntry) (*models.CreateLogResponse, error) {
	s.record("create")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, entry)
	return &models.CreateLogResponse{Message: "ok", Data: entry}, nil
}

func (s *stubAPI) GetLogs(_ context.Context, filters models.FilterCriteria) (*models.LogCollection, error) {
	s.record("list")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filters)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &models.LogCollection{Entries: s.logs, TotalCount: len(s.logs)}, nil
}

func (s *stubAPI) DeleteAllLogs(_ context.Context, key string) (*models.DeleteLogsResponse, error) {
	s.record("delete")
	if key != "SECRET123" {
		return nil, &integration.ApplicationError{Op: "delete logs", StatusCode: 403, Message: "Invalid secret key"}
	}
	return &models.DeleteLogsResponse{Message: "All progress logs have been cleared successfully"}, nil
}

func (s *stubAPI) Ping(context.Context) error {
	return s.pingErr
}

func newTestHandler(api *stubAPI) (*Handler, *notify.Center) {
	return newTestHandlerWithOptions(api, Options{Title: "Progress"})
}

func newTestHandlerWithOptions(api *stubAPI, opts Options) (*Handler, *notify.Center) {
	center := notify.NewCenter(time.Minute, zerolog.Nop())
	h := NewHandler(api, center, zerolog.Nop(), opts)
	return h, center
}

var fieldPattern = regexp.MustCompile(`name="([^"]+)" value="([^"]*)"`)

// formFields собирает то, что браузер отправит из формы с данным id
func formFields(t *testing.T, body, formID string) url.Values {
	t.Helper()

	start := strings.Index(body, `<form id="`+formID+`"`)
	require.GreaterOrEqual(t, start, 0, "form %s not rendered", formID)
	end := strings.Index(body[start:], "</form>")
	require.Greater(t, end, 0)

	values := url.Values{}
	for _, m := range fieldPattern.FindAllStringSubmatch(body[start:start+end], -1) {
		values.Add(m[1], html.UnescapeString(m[2]))
	}
	return values
}

func (s *stubAPI) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.filters = nil
}

func do(t *testing.T, h *Handler, method, target string, form url.Values, htmx bool, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.GetRouter().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersFullPageAndSetsSession(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodGet, "/", nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	require.Contains(t, body, "0 entries")
	require.Contains(t, body, "No logs found")
	require.Equal(t, []string{"list"}, api.calls)
	require.True(t, api.filters[0].IsEmpty())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "progress_session", cookies[0].Name)
}

func TestSubmitLogViaHTMX(t *testing.T) {
	api := &stubAPI{logs: []models.LogEntry{{Email: "ana@example.com", Status: models.StatusCompleted}}}
	h, _ := newTestHandler(api)

	form := url.Values{
		"email":      {"ana@example.com"},
		"student_id": {"S-1"},
		"week":       {"Week 1"},
		"exercise":   {"Loops"},
		"status":     {"Completed"},
		"feedback":   {"fine"},
	}
	rec := do(t, h, http.MethodPost, "/ui/logs", form, true)

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, `<main id="app">`))
	require.Contains(t, body, "alert-success")
	require.Contains(t, body, "Progress logged successfully!")
	require.Contains(t, body, `name="email" value=""`)
	require.Contains(t, body, `<span class="badge bg-success">Completed</span>`)

	require.Equal(t, []string{"create", "list"}, api.calls)
	require.Equal(t, models.StatusCompleted, api.created[0].Status)
	require.True(t, api.filters[0].IsEmpty())
}

func TestFilterLogsPassesQuery(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodGet, "/ui/logs?filter_week=Week+2&filter_email=", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.FilterCriteria{Week: "Week 2"}, api.filters[0])
	require.Contains(t, rec.Body.String(), `name="filter_week" value="Week 2"`)
}

func TestClearFiltersResetsForm(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodPost, "/ui/filters/clear", url.Values{"filter_week": {"Week 2"}}, true)

	require.True(t, api.filters[0].IsEmpty())
	require.Contains(t, rec.Body.String(), `name="filter_week" value=""`)
}

func TestDeleteWithoutKeyWarnsOnly(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodPost, "/ui/logs/delete", url.Values{"confirm": {"yes"}}, true)

	require.Empty(t, api.calls)
	require.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	body := rec.Body.String()
	require.Equal(t, 1, strings.Count(body, `class="alert `))
	require.Contains(t, body, "alert-warning")
}

func TestDeleteWithoutConfirmationDoesNothing(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodPost, "/ui/logs/delete", url.Values{"secret_key": {"SECRET123"}}, true)

	require.Empty(t, api.calls)
	require.NotContains(t, rec.Body.String(), `class="alert `)
}

func TestDeleteConfirmed(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodPost, "/ui/logs/delete", url.Values{"secret_key": {"SECRET123"}, "confirm": {"yes"}}, true)

	require.Equal(t, []string{"delete", "list"}, api.calls)
	body := rec.Body.String()
	require.Contains(t, body, "All progress logs have been cleared successfully")
	require.Contains(t, body, `name="secret_key" value=""`)
}

func TestNotificationsSurviveUntilDismissed(t *testing.T) {
	api := &stubAPI{}
	h, center := newTestHandler(api)

	first := do(t, h, http.MethodPost, "/ui/logs/delete", url.Values{}, true)
	cookie := first.Result().Cookies()[0]

	overlay := center.Overlay(cookie.Value)
	active := overlay.Active()
	require.Len(t, active, 1)

	// тот же оверлей виден при следующей загрузке страницы
	reload := do(t, h, http.MethodGet, "/", nil, false, cookie)
	require.Contains(t, reload.Body.String(), active[0].ID)

	rec := do(t, h, http.MethodDelete, "/ui/notifications/"+active[0].ID, nil, true, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Empty(t, overlay.Active())
}

func TestHealthAndReady(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, serviceName, health.Service)

	rec = do(t, h, http.MethodGet, "/ready", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	api.pingErr = errors.New("connection refused")
	rec = do(t, h, http.MethodGet, "/ready", nil, false)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var ready ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ready))
	require.Equal(t, "not_ready", ready.Status)
	require.Equal(t, "down", ready.Services[0].Status)
}

func TestFailedOperationsKeepRenderedTable(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		form     url.Values
		setup    func(api *stubAPI)
		severity string
		calls    []string
	}{
		{
			name:     "delete without key",
			method:   http.MethodPost,
			target:   "/ui/logs/delete",
			form:     url.Values{"confirm": {"yes"}},
			severity: "alert-warning",
		},
		{
			name:   "delete declined",
			method: http.MethodPost,
			target: "/ui/logs/delete",
			form:   url.Values{"secret_key": {"SECRET123"}},
		},
		{
			name:     "delete with wrong key",
			method:   http.MethodPost,
			target:   "/ui/logs/delete",
			form:     url.Values{"secret_key": {"nope"}, "confirm": {"yes"}},
			severity: "alert-danger",
			calls:    []string{"delete"},
		},
		{
			name:     "create rejected",
			method:   http.MethodPost,
			target:   "/ui/logs",
			form:     url.Values{"email": {"bad"}},
			setup:    func(api *stubAPI) { api.createErr = &integration.ApplicationError{StatusCode: 400, Message: "Missing field: week"} },
			severity: "alert-danger",
			calls:    []string{"create"},
		},
		{
			name:     "list unreachable",
			method:   http.MethodGet,
			target:   "/ui/logs?filter_week=Week+2",
			setup:    func(api *stubAPI) { api.listErr = &integration.TransportError{Op: "list logs", Err: errors.New("connection refused")} },
			severity: "alert-danger",
			calls:    []string{"list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{logs: []models.LogEntry{{Email: "ana@example.com", Status: models.StatusCompleted}}}
			h, _ := newTestHandler(api)

			page := do(t, h, http.MethodGet, "/", nil, false)
			require.Contains(t, page.Body.String(), `<span id="log-count" class="badge bg-secondary">1 entries</span>`)
			cookie := page.Result().Cookies()[0]

			api.reset()
			if tt.setup != nil {
				tt.setup(api)
			}

			rec := do(t, h, tt.method, tt.target, tt.form, true, cookie)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "none", rec.Header().Get("HX-Reswap"))

			body := rec.Body.String()
			require.Contains(t, body, `id="notification-overlay" hx-swap-oob="true"`)
			require.NotContains(t, body, `id="app"`)
			require.NotContains(t, body, `id="log-count"`)

			if tt.severity == "" {
				require.NotContains(t, body, `class="alert `)
			} else {
				require.Contains(t, body, tt.severity)
			}
			require.Equal(t, tt.calls, api.calls)
		})
	}
}

func TestFailedDeleteWithoutHTMXReloadsTable(t *testing.T) {
	api := &stubAPI{logs: []models.LogEntry{{Email: "ana@example.com", Status: models.StatusCompleted}}}
	h, _ := newTestHandler(api)

	rec := do(t, h, http.MethodPost, "/ui/logs/delete", url.Values{"secret_key": {"nope"}, "confirm": {"yes"}}, false)

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	require.Contains(t, body, `<span id="log-count" class="badge bg-secondary">1 entries</span>`)
	require.Contains(t, body, "ana@example.com")
	require.Contains(t, body, "Error: Invalid secret key")
	require.Equal(t, []string{"delete", "list"}, api.calls)

	// ключ не возвращается в разметку
	require.NotContains(t, body, "nope")
	require.Contains(t, body, `name="secret_key" value=""`)
}

func TestSubmitKeepsAppliedFiltersWhenConfigured(t *testing.T) {
	api := &stubAPI{}
	h, _ := newTestHandlerWithOptions(api, Options{PreserveFiltersOnSubmit: true})

	filtered := do(t, h, http.MethodGet, "/ui/logs?filter_week=Week+2", nil, true)

	// отправляем ровно то, что содержит отрисованная форма
	form := formFields(t, filtered.Body.String(), "log-form")
	require.Equal(t, "Week 2", form.Get("filter_week"))

	form.Set("email", "ana@example.com")
	form.Set("student_id", "S-1")
	form.Set("week", "Week 2")
	form.Set("exercise", "Loops")
	form.Set("status", "completed")
	form.Set("feedback", "fine")

	api.reset()
	rec := do(t, h, http.MethodPost, "/ui/logs", form, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"create", "list"}, api.calls)
	require.Equal(t, models.FilterCriteria{Week: "Week 2"}, api.filters[0])
	require.Contains(t, rec.Body.String(), `name="filter_week" value="Week 2"`)
}
