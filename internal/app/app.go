// Package app wires configuration, observability, services, transport,
// and the websocket hub into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulsecli/internal/config"
	apierrors "pulsecli/internal/errors"
	"pulsecli/internal/infrastructure"
	"pulsecli/internal/services"
	transporthttp "pulsecli/internal/transport/http"
	"pulsecli/internal/ws"
)

// Version is stamped at build time.
var Version = "dev"

// Application holds the assembled server and its dependencies.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	OTel   *infrastructure.OTelProviders
	Charts *services.ChartService
	Hub    *ws.Hub
	Server *http.Server

	watcher *ws.Watcher
}

// NewApplication builds the full dependency graph from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	otelProviders, err := infrastructure.InitializeOTel(logger)
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}

	chartMetrics, err := infrastructure.NewChartMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("create chart metrics: %w", err)
	}

	chartService, err := services.NewChartService(cfg.Dataset, logger, chartMetrics)
	if err != nil {
		return nil, err
	}
	healthService := services.NewHealthService(chartService, Version)

	hub := ws.NewHub(logger)
	errorHandler := apierrors.NewErrorHandler(logger)

	notifyReload := func() {
		hub.Broadcast(ws.Event{Type: ws.TypeDatasetUpdated})
	}

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Charts:   transporthttp.NewChartHandler(chartService, logger, errorHandler),
		Dataset:  transporthttp.NewDatasetHandler(chartService, logger, errorHandler, notifyReload),
		Health:   transporthttp.NewHealthHandler(healthService),
		Metrics:  otelProviders.PrometheusHTTP,
		WS:       ws.Handler(hub, cfg.WebSocket, logger),
		Logger:   logger,
		Security: cfg.Security,
	})

	app := &Application{
		Config: cfg,
		Logger: logger,
		OTel:   otelProviders,
		Charts: chartService,
		Hub:    hub,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	if cfg.Dataset.Watch {
		watcher, err := ws.NewWatcher(cfg.Dataset.Path, chartService, hub, logger)
		if err != nil {
			return nil, fmt.Errorf("create dataset watcher: %w", err)
		}
		app.watcher = watcher
	}

	return app, nil
}

// Run starts the server and blocks until shutdown completes.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Hub.Start()
	if a.watcher != nil {
		a.watcher.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
		)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	return a.shutdown()
}

func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close watcher: %w", err))
		}
	}
	a.Hub.Stop()
	if err := a.OTel.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	// Give in-flight log writes a moment before process exit.
	time.Sleep(50 * time.Millisecond)
	return errors.Join(errs...)
}
