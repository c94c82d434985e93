package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/RubachokBoss/progress-log/client/internal/app"
	"github.com/RubachokBoss/progress-log/client/internal/config"
	"github.com/RubachokBoss/progress-log/client/pkg/logger"
)

func main() {
	// до загрузки конфига пишем с настройками по умолчанию
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	log.Info().
		Str("address", cfg.Server.Address).
		Str("api", cfg.API.BaseURL).
		Msg("Progress log client started")

	<-ctx.Done()
	log.Info().Msg("Shutting down progress log client...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Progress log client stopped")
}
