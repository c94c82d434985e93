package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RubachokBoss/progress-log/client/internal/config"
	"github.com/RubachokBoss/progress-log/client/internal/handler"
	"github.com/RubachokBoss/progress-log/client/internal/middleware"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/RubachokBoss/progress-log/client/internal/proxy"
	"github.com/RubachokBoss/progress-log/client/internal/server"
	"github.com/RubachokBoss/progress-log/client/internal/service/integration"
	"github.com/rs/zerolog"
)

type App struct {
	server *server.Server
	center *notify.Center
	logger zerolog.Logger
	config *config.Config

	stopJanitor context.CancelFunc
	janitorDone chan struct{}
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	api := integration.NewProgressClient(integration.ClientConfig{
		BaseURL:         cfg.API.BaseURL,
		LogEndpoint:     cfg.API.LogEndpoint,
		LogsEndpoint:    cfg.API.LogsEndpoint,
		Timeout:         cfg.API.Timeout,
		MaxIdleConns:    cfg.API.MaxIdleConns,
		IdleConnTimeout: cfg.API.IdleConnTimeout,
	}, log)

	center := notify.NewCenter(cfg.Notifications.TTL, log)

	h := handler.NewHandler(api, center, log, handler.Options{
		Title:                   cfg.UI.Title,
		CookieName:              cfg.Notifications.CookieName,
		PreserveFiltersOnSubmit: cfg.UI.PreserveFiltersOnSubmit,
	})

	if cfg.Proxy.Enabled {
		apiProxy, err := proxy.NewProxy(cfg.API.BaseURL, log,
			proxy.WithPrefix(cfg.Proxy.Prefix),
			proxy.WithTimeout(cfg.Proxy.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create api proxy: %w", err)
		}
		h.MountAPIProxy(cfg.Proxy.Prefix, apiProxy)
	}

	srv := server.New(server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, h.GetRouter(), log,
		middleware.CORS(cfg.CORS),
		middleware.RequestLogger(log),
		// recovery снаружи таймаута: TimeoutHandler пробрасывает панику обратно
		middleware.Recovery(log),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	a := &App{
		server:      srv,
		center:      center,
		logger:      log,
		config:      cfg,
		janitorDone: make(chan struct{}),
	}

	// уборщик уведомлений живет столько же, сколько приложение
	janitorCtx, cancel := context.WithCancel(context.Background())
	a.stopJanitor = cancel
	go func() {
		defer close(a.janitorDone)
		center.Run(janitorCtx, cfg.Notifications.JanitorInterval)
	}()

	return a, nil
}

func (a *App) Run() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.stopJanitor()
	<-a.janitorDone
	return a.server.Shutdown(ctx)
}

// Handler нужен тестам: весь стек middleware без сетевого слушателя
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}
