package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/transitdesk/destination-resolver/internal/adapter/googlemaps"
	"github.com/transitdesk/destination-resolver/internal/adapter/httpapi"
	kafkaadapter "github.com/transitdesk/destination-resolver/internal/adapter/kafka"
	"github.com/transitdesk/destination-resolver/internal/config"
	"github.com/transitdesk/destination-resolver/internal/domain"
	"github.com/transitdesk/destination-resolver/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client, err := googlemaps.NewClient(cfg.GoogleAPIKey, cfg.GoogleTimeout, metrics, logger)
	if err != nil {
		logger.Error("failed to create googlemaps client", "error", err)
		os.Exit(1)
	}

	resolver := domain.NewResolver(client, client, logger)

	// Audit event publishing is feature-flagged via EVENTS_ENABLED.
	var publisher httpapi.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, metrics, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("resolution event publishing enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		logger.Info("resolution event publishing disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, resolver, client, publisher, cfg.DefaultTimezone, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
