package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/patent-dashboard/internal/adapter/http"
	"github.com/couchcryptid/patent-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/patent-dashboard/internal/config"
	"github.com/couchcryptid/patent-dashboard/internal/domain"
	"github.com/couchcryptid/patent-dashboard/internal/observability"
	"github.com/couchcryptid/patent-dashboard/internal/page"
	"github.com/couchcryptid/patent-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	source := pipeline.NewFileSource(cfg.DataFile, cfg.Schema, domain.LoadOptions{})
	enricher := pipeline.NewGeocodeEnricher(geocoder, logger)
	renderer := pipeline.NewRenderer(page.CopyFor(cfg.Dataset, cfg.TopN), cfg.Author, logger)

	p := pipeline.New(source, enricher, renderer, logger, metrics, cfg.TopN)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build once before listening; a broken input never gets served.
	content, err := p.Run(ctx)
	if err != nil {
		logger.Error("dashboard build failed", "path", cfg.DataFile, "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, content, p, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
