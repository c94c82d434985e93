package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Address:         "127.0.0.1:0",
			ShutdownTimeout: time.Second,
			RequestTimeout:  5 * time.Second,
		},
		API: config.APIConfig{
			BaseURL:      apiURL,
			LogEndpoint:  "/log",
			LogsEndpoint: "/logs",
		},
		Proxy: config.ProxyConfig{Enabled: true, Prefix: "/api"},
		Notifications: config.NotificationsConfig{
			TTL:             5 * time.Second,
			JanitorInterval: 10 * time.Millisecond,
			CookieName:      "progress_session",
		},
		UI:   config.UIConfig{Title: "Student Progress Log"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST"}},
	}
}

func TestAppWiring(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logs": [], "total_count": 0}`))
	}))
	defer upstream.Close()

	a, err := New(testConfig(upstream.URL), zerolog.Nop())
	require.NoError(t, err)
	defer a.Shutdown(context.Background())

	t.Run("page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>Student Progress Log</title>")
		assert.Contains(t, rec.Body.String(), "0 entries")
	})

	t.Run("proxy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"logs": [], "total_count": 0}`, rec.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestShutdownStopsJanitor(t *testing.T) {
	a, err := New(testConfig("http://127.0.0.1:1"), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, a.Shutdown(ctx))

	select {
	case <-a.janitorDone:
	default:
		t.Fatal("janitor still running after shutdown")
	}
}
