package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"campus-prep/internal/app"
	"campus-prep/internal/config"
	"campus-prep/internal/datastore"
	"campus-prep/internal/pkg/logger"

	"github.com/joho/godotenv"
)

// seed writes the admin record and the default companies, FAQs and updates
// into the configured record store, then prints per-family counts.
func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer func() { _ = c.Close() }()

	data := datastore.New(c.Records, datastore.WithLogger(logger.With("datastore")))
	if err := data.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}
	if err := data.EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed records")
	}

	sum, err := data.Summarize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to summarize")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(sum)
}
