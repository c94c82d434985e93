package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Server - http.Server с корневым роутером: базовые chi middleware,
// затем цепочка приложения, затем UI и прокси
type Server struct {
	http   *http.Server
	root   *chi.Mux
	logger zerolog.Logger
}

type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Middleware = func(http.Handler) http.Handler

// New навешивает chain в переданном порядке; app монтируется последним,
// потому что chi запрещает Use после регистрации маршрутов
func New(cfg Config, app http.Handler, logger zerolog.Logger, chain ...Middleware) *Server {
	root := chi.NewRouter()

	root.Use(middleware.RequestID)
	root.Use(middleware.RealIP)
	root.Use(middleware.CleanPath)
	root.Use(middleware.GetHead)
	// фрагменты страницы и JSON прокси
	root.Use(middleware.Compress(5, "text/html", "application/json"))
	root.Use(chain...)

	root.Mount("/", app)

	return &Server{
		http: &http.Server{
			Addr:         cfg.Address,
			Handler:      root,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		root:   root,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.root
}

// Start блокирует до Shutdown; штатная остановка не считается ошибкой
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.http.Addr).Msg("Starting server")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server")
	return s.http.Shutdown(ctx)
}
