package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-prep/internal/app"
	"campus-prep/internal/config"
	"campus-prep/internal/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		l := logger.L()
		l.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		l := logger.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	bootstrap, cleanup, err := app.Bootstrap(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Error().Err(err).Msg("cleanup error")
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.App.Environment).
			Str("storage", cfg.Storage.Driver).
			Str("sessions", cfg.Storage.SessionDriver).
			Msg("http server starting")
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
