package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/adapter/climate"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/adapter/httpapi"
	kafkaadapter "github.com/Mohamedmoufaq/Climate-credit-score-system/internal/adapter/kafka"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/config"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/history"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/observability"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	cat := catalog.New()

	// Indicator source (feature-flagged via CLIMATE_ENABLED / CLIMATE_API_URL).
	var source domain.IndicatorSource
	sourceName := scoring.SourceDerived
	if cfg.ClimateEnabled {
		source = climate.NewClient(cfg.ClimateAPIURL, cfg.ClimateAPIKey, cfg.ClimateTimeout, metrics, logger)
		sourceName = scoring.SourceProvider
		metrics.ProviderEnabled.Set(1)
		logger.Info("climate provider enabled", "url", cfg.ClimateAPIURL, "timeout", cfg.ClimateTimeout)
	} else {
		source = catalog.DerivedSource{}
		metrics.ProviderEnabled.Set(0)
		logger.Info("climate provider disabled, deriving indicators locally")
	}

	var audit domain.AuditSink
	var auditWriter *kafkaadapter.Writer
	if cfg.AuditEnabled {
		auditWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.AuditTopic, logger)
		audit = auditWriter
		logger.Info("audit stream enabled", "topic", cfg.AuditTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("audit stream disabled")
	}

	scorer := scoring.New(source, sourceName, cat, audit, cfg.Scoring, logger, metrics)
	hist := history.NewStore(cfg.HistorySize)

	srv := httpapi.NewServer(cfg.HTTPAddr, scorer, scorer, cat, hist, logger)

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
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
