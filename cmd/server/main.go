package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/api"
	"github.com/hliang/fundglance/internal/config"
	"github.com/hliang/fundglance/internal/quote"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.LogLevel)

	// Portfolio config file
	portfolioStore := store.New(cfg.Portfolio.Path, log)
	if err := portfolioStore.EnsureExists(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Portfolio.Path).Msg("failed to prepare portfolio config")
	}
	log.Info().Str("path", cfg.Portfolio.Path).Msg("using portfolio config")

	// Quote provider and services
	provider := quote.NewProvider(cfg.Quote.Timeout, cfg.Quote.CacheTTL, log)
	portfolioService := service.NewPortfolioService(portfolioStore, provider, log)

	// Create router
	router := api.NewRouter(portfolioService, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(parsed).
		With().
		Timestamp().
		Logger()
}
