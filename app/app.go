package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/tenpin/app/eventbus"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling"
	"github.com/Black-And-White-Club/tenpin/app/observability"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App wires configuration, observability, the event bus and the modules
// behind one HTTP router.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	EventBus      eventbus.EventBus
	BowlingModule *bowling.Module

	router chi.Router
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*App, error) {
	obs, err := observability.New(cfg.Observability, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	var bus eventbus.EventBus
	if cfg.NATS.URL != "" {
		bus, err = eventbus.NewNATSEventBus(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create event bus: %w", err)
		}
		logger.InfoContext(ctx, "Publishing events to NATS", slog.String("url", cfg.NATS.URL))
	} else {
		bus = eventbus.NewInMemoryEventBus(logger)
		logger.InfoContext(ctx, "Publishing events in process")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(correlationMiddleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	bowlingModule, err := bowling.NewModule(ctx, cfg, obs, bus, router)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("failed to initialize bowling module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		EventBus:      bus,
		BowlingModule: bowlingModule,
		router:        router,
	}, nil
}

// Handler returns the root HTTP handler.
func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves HTTP until ctx is cancelled, then shuts everything down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	servers := []*http.Server{{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		servers = append(servers, &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go app.BowlingModule.Run(runCtx, &wg)

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.InfoContext(ctx, "Starting HTTP server", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		logger.Error("HTTP server failed", slog.Any("error", runErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down HTTP server", slog.String("address", srv.Addr), slog.Any("error", err))
		}
	}

	cancel()
	if err := app.BowlingModule.Close(); err != nil {
		logger.Error("Error closing bowling module", slog.Any("error", err))
	}
	wg.Wait()

	if err := app.EventBus.Close(); err != nil {
		logger.Error("Error closing event bus", slog.Any("error", err))
	}

	logger.Info("Graceful shutdown complete")
	return runErr
}

// correlationMiddleware tags events raised while serving a request with its request id.
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(eventbus.WithCorrelationID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
