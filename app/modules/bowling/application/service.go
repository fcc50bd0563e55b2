package bowlingservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/tenpin/app/eventbus"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/Black-And-White-Club/tenpin/pkg/jwt"
	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BowlingService implements the Service interface.
type BowlingService struct {
	repo     bowlingdb.Repository
	EventBus eventbus.EventBus
	tokens   jwt.Service
	logger   *slog.Logger
	metrics  bowlingmetrics.BowlingMetrics
	tracer   trace.Tracer
}

// NewBowlingService creates a new BowlingService.
func NewBowlingService(
	repo bowlingdb.Repository,
	eventBus eventbus.EventBus,
	tokens jwt.Service,
	logger *slog.Logger,
	metrics bowlingmetrics.BowlingMetrics,
	tracer trace.Tracer,
) *BowlingService {
	return &BowlingService{
		repo:     repo,
		EventBus: eventBus,
		tokens:   tokens,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *BowlingService,
	ctx context.Context,
	operationName string,
	gameID uuid.UUID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", gameID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.DebugContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("game_id", gameID.String()),
		slog.String("correlation_id", eventbus.CorrelationIDFromContext(ctx)),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("game_id", gameID.String()),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("game_id", gameID.String()),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("game_id", gameID.String()),
			slog.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.logger.DebugContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String("game_id", gameID.String()),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// lookup fetches a game, translating the store's not-found into ErrGameNotFound.
func (s *BowlingService) lookup(ctx context.Context, gameID uuid.UUID) (*bowlingdb.Entry, error) {
	entry, err := s.repo.Get(ctx, gameID)
	if errors.Is(err, bowlingdb.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	return entry, err
}

// publish sends an event. The game has already changed by the time events go
// out, so a failed publish is logged rather than reported to the caller.
func (s *BowlingService) publish(ctx context.Context, topic string, payload any) {
	if s.EventBus == nil {
		return
	}
	if err := s.EventBus.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}

// --- Service Methods ---

// GetGame returns a snapshot of a live game.
func (s *BowlingService) GetGame(ctx context.Context, gameID uuid.UUID) (*GameView, error) {
	result, err := withTelemetry(s, ctx, "GetGame", gameID, func(ctx context.Context) (GameOperationResult, error) {
		view, err := s.snapshot(ctx, gameID)
		if errors.Is(err, ErrGameNotFound) {
			return results.FailureResult[GameView, error](err), nil
		}
		if err != nil {
			return GameOperationResult{}, err
		}
		return results.SuccessResult[GameView, error](view), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}

func (s *BowlingService) snapshot(ctx context.Context, gameID uuid.UUID) (GameView, error) {
	entry, err := s.lookup(ctx, gameID)
	if err != nil {
		return GameView{}, err
	}

	var view GameView
	_ = entry.WithGame(func(g *bowlinggame.Game) error {
		view = NewGameView(entry.ID, entry.CreatedAt, g)
		return nil
	})
	return view, nil
}
