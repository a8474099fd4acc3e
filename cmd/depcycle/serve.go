package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"depcycle/internal/core/app"
	"depcycle/internal/core/config"
	"depcycle/internal/mcp/contracts"
	"depcycle/internal/mcp/registry"
	"depcycle/internal/mcp/runtime"
	"depcycle/internal/mcp/transport"
	"depcycle/internal/shared/observability"
	"depcycle/internal/shared/version"
)

// runServer wires the analysis services into the tool server and blocks until
// the context is cancelled or the transport fails.
func runServer(ctx context.Context, a *app.App, logger *slog.Logger) error {
	cfg := a.Config

	if cfg.Observability.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, "depcycle", version.Version, cfg.Observability.Tracing.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("trace provider shutdown failed", "error", err)
			}
		}()
	}

	metricsServer := startMetricsServer(cfg.Observability.Address)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown failed", "error", err)
		}
	}()

	adapter, err := buildTransport(cfg)
	if err != nil {
		return err
	}

	srv, err := runtime.New(cfg, runtime.Dependencies{
		Analysis: a.AnalysisService(),
		Health:   app.NewHealthService(a),
		Logger:   logger,
	}, registry.New(), adapter, runtime.BuildOperationAllowlist(cfg), contracts.ToolNameDepcycle)
	if err != nil {
		return err
	}

	// The running server keeps its wiring; a config change needs a restart.
	watcher := config.NewWatcher(*configPath, func(next *config.Config) {
		slog.Info("configuration changed on disk, restart to apply", "path", *configPath)
	})
	if err := watcher.Start(ctx); err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		defer watcher.Stop()
	}

	return srv.Run(ctx)
}

func buildTransport(cfg *config.Config) (transport.Adapter, error) {
	switch cfg.Server.Transport {
	case "stdio":
		return transport.NewStdio(cfg.Server.RateLimit)
	case "http":
		return transport.NewSSE(cfg.Server.Address, cfg.Server.RateLimit)
	default:
		return nil, fmt.Errorf("unsupported transport: %s", cfg.Server.Transport)
	}
}

func startMetricsServer(address string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:    address,
		Handler: mux,
	}
	go func() {
		slog.Info("metrics endpoint listening", "address", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Warn("metrics server failed", "error", err)
		}
	}()
	return srv
}
