package bowling

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/tenpin/app/eventbus"
	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/events"
	bowlinghandlers "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/handlers"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/Black-And-White-Club/tenpin/app/observability"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/Black-And-White-Club/tenpin/pkg/jwt"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the bowling module.
type Module struct {
	config     *config.Config
	service    bowlingservice.Service
	handlers   bowlinghandlers.Handlers
	eventBus   eventbus.EventBus
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates a new bowling module and mounts its routes on httpRouter.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing bowling module")

	var metrics bowlingmetrics.BowlingMetrics = bowlingmetrics.NoOpMetrics{}
	if obs.Registry != nil {
		promMetrics, err := bowlingmetrics.NewPrometheusMetrics(obs.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register bowling metrics: %w", err)
		}
		metrics = promMetrics
	}

	repo := bowlingdb.NewMemoryRepository(cfg.Bowling.MaxGames)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	service := bowlingservice.NewBowlingService(repo, eventBus, tokens, logger, metrics, tracer)
	handlers := bowlinghandlers.NewBowlingHandlers(service, logger, tracer)

	if httpRouter != nil {
		limiter := bowlinghandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)
		httpRouter.Route("/api/games", bowlinghandlers.Routes(handlers, tokens, bowlinghandlers.RouteConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			Limiter:        limiter,
		}))
	}

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		eventBus: eventBus,
		logger:   logger,
	}, nil
}

// Run starts the module's in-process listeners and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting bowling module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if bus, ok := m.eventBus.(*eventbus.InMemoryEventBus); ok {
		completed, err := bus.Subscribe(ctx, bowlingevents.GameCompletedV1)
		if err != nil {
			m.logger.ErrorContext(ctx, "Failed to subscribe to completed games", slog.Any("error", err))
			return
		}
		m.logCompletedGames(ctx, completed)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Bowling module goroutine stopped")
}

// logCompletedGames writes one log line per finished game until ctx is done.
func (m *Module) logCompletedGames(ctx context.Context, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var payload bowlingevents.GameCompletedPayloadV1
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				m.logger.WarnContext(ctx, "Dropping malformed completion event", slog.Any("error", err))
			} else {
				m.logger.InfoContext(ctx, "Game finished",
					slog.String("game_id", payload.GameID),
					slog.Int("final_score", payload.FinalScore),
				)
			}
			msg.Ack()
		}
	}
}

// Close stops the bowling module.
func (m *Module) Close() error {
	m.logger.Info("Stopping bowling module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

// GetService returns the bowling service.
func (m *Module) GetService() bowlingservice.Service {
	return m.service
}
