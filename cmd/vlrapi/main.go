package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shreshth-s/vlr-api/internal/api/rest"
	"github.com/shreshth-s/vlr-api/internal/cache"
	"github.com/shreshth-s/vlr-api/internal/config"
	"github.com/shreshth-s/vlr-api/internal/debug"
	"github.com/shreshth-s/vlr-api/internal/scrape"
	"github.com/shreshth-s/vlr-api/internal/vlr"
)

const (
	serviceName    = "vlr-api"
	serviceVersion = "1.0.0"
)

func main() {
	logger := newLogger()
	logger.Info().Str("version", serviceVersion).Msgf("starting %s", serviceName)

	cfg := config.Load(logger)

	store := cache.New(cfg.RedisURL, logger)
	defer store.Close()

	samples := debug.NewSampleStore(cfg.Debug, logger)

	client := scrape.NewClient(cfg.BaseURL, cfg.Scraper, logger)
	scraper := vlr.NewScraper(client, samples, cfg.Debug, logger)

	server := rest.NewServer(cfg, scraper, store, samples, logger)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("REST API listening")
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("REST server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}

	logger.Info().Msgf("%s stopped", serviceName)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = l
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	if os.Getenv("ENVIRONMENT") != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
