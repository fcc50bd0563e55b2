package bowlingservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
)

// CreateGame starts a fresh game and issues a player token for it.
func (s *BowlingService) CreateGame(ctx context.Context) (*CreatedGame, error) {
	result, err := withTelemetry(s, ctx, "CreateGame", uuid.Nil, func(ctx context.Context) (results.OperationResult[CreatedGame, error], error) {
		entry, err := s.repo.Create(ctx)
		if errors.Is(err, bowlingdb.ErrCapacityReached) {
			return results.FailureResult[CreatedGame, error](ErrTooManyGames), nil
		}
		if err != nil {
			return results.OperationResult[CreatedGame, error]{}, fmt.Errorf("failed to create game: %w", err)
		}

		token, err := s.tokens.GenerateGameToken(entry.ID.String())
		if err != nil {
			_ = s.repo.Delete(ctx, entry.ID)
			return results.OperationResult[CreatedGame, error]{}, err
		}

		s.metrics.SetActiveGames(ctx, s.repo.Count(ctx))
		view, err := s.snapshot(ctx, entry.ID)
		if err != nil {
			return results.OperationResult[CreatedGame, error]{}, err
		}

		s.logger.InfoContext(ctx, "Game created", slog.String("game_id", entry.ID.String()))
		return results.SuccessResult[CreatedGame, error](CreatedGame{Game: view, Token: token}), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return result.Success, nil
}
