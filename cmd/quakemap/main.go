package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Marker sink is feature-flagged via KAFKA_BROKERS.
	var (
		publisher pipeline.MarkerPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("kafka marker sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMarkerTopic)
	} else {
		logger.Info("kafka marker sink disabled")
	}

	client := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, metrics, logger)
	styler := domain.NewFeatureStyler(cfg.EscapePopupPlace)
	renderer := pipeline.New(client, styler, publisher, logger, metrics)

	srv, err := httpadapter.NewServer(cfg.HTTPAddr, renderer, domain.DefaultLegend(), httpadapter.MapOptions{
		StreetTileURL: cfg.StreetTileURL,
		TopoTileURL:   cfg.TopoTileURL,
	}, logger)
	if err != nil {
		logger.Error("failed to build http server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Render once at startup so readiness reflects the feed's reachability.
	go func() {
		if _, err := renderer.Render(ctx); err != nil {
			logger.Warn("initial render failed", "error", err, "feed_url", cfg.FeedURL)
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
