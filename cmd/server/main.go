package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/waterborne-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/waterborne-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/waterborne-risk-service/internal/adapter/mapbox"
	"github.com/couchcryptid/waterborne-risk-service/internal/config"
	"github.com/couchcryptid/waterborne-risk-service/internal/content"
	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
	"github.com/couchcryptid/waterborne-risk-service/internal/report"
)

// reportSink is a BatchLoader that owns a connection.
type reportSink interface {
	report.BatchLoader
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	library, err := content.Load(cfg.DefaultLanguage)
	if err != nil {
		logger.Error("failed to load education content", "error", err)
		os.Exit(1)
	}
	logger.Info("education content loaded", "languages", library.Languages(), "default", cfg.DefaultLanguage)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocode cache", "error", err)
			os.Exit(1)
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout, "region", cfg.GeocodeRegion)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var sink reportSink
	if cfg.KafkaEnabled {
		sink = kafkaadapter.NewWriter(cfg, logger)
		logger.Info("forwarding reports to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportTopic)
	} else {
		sink = report.NewLogLoader(logger)
		logger.Info("kafka disabled, reports are written to the log")
	}

	dispatcher := report.NewDispatcher(sink, geocoder, logger, metrics, report.DispatcherConfig{
		QueueSize:     cfg.ReportQueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.BatchFlushInterval,
		Region:        cfg.GeocodeRegion,
	})
	submitter := report.NewSubmitter(dispatcher, cfg.ReportAckDelay, nil, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Dependencies{
		Ready:             dispatcher,
		Reports:           submitter,
		Education:         library,
		Metrics:           metrics,
		HealthCenterPhone: cfg.HealthCenterPhone,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start report dispatcher. It outlives the signal so reports accepted by
	// in-flight requests are still flushed.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		if err := dispatcher.Run(dispatchCtx); err != nil {
			logger.Error("dispatcher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	stopDispatch()

	select {
	case <-dispatchDone:
	case <-shutdownCtx.Done():
		logger.Warn("dispatcher did not stop before shutdown timeout")
	}

	if err := sink.Close(); err != nil {
		logger.Error("report sink close error", "error", err)
	}

	logger.Info("shutdown complete")
}
