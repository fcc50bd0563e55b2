package bowlingservice

import (
	"context"
	"errors"
	"log/slog"

	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/events"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
)

// RestartGame wipes every roll of a live game, keeping its id and token.
func (s *BowlingService) RestartGame(ctx context.Context, gameID uuid.UUID) (GameOperationResult, error) {
	return withTelemetry(s, ctx, "RestartGame", gameID, func(ctx context.Context) (GameOperationResult, error) {
		entry, err := s.lookup(ctx, gameID)
		if errors.Is(err, ErrGameNotFound) {
			return results.FailureResult[GameView, error](ErrGameNotFound), nil
		}
		if err != nil {
			return GameOperationResult{}, err
		}

		var (
			view     GameView
			previous int
		)
		_ = entry.WithGame(func(g *bowlinggame.Game) error {
			previous = g.Score()
			g.Restart()
			view = NewGameView(entry.ID, entry.CreatedAt, g)
			return nil
		})

		s.logger.InfoContext(ctx, "Game restarted",
			slog.String("game_id", gameID.String()),
			slog.Int("previous_score", previous),
		)
		s.publish(ctx, bowlingevents.GameRestartedV1, bowlingevents.GameRestartedPayloadV1{
			GameID:        gameID.String(),
			PreviousScore: previous,
		})

		return results.SuccessResult[GameView, error](view), nil
	})
}

// DeleteGame drops a live game.
func (s *BowlingService) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	result, err := withTelemetry(s, ctx, "DeleteGame", gameID, func(ctx context.Context) (results.OperationResult[struct{}, error], error) {
		if err := s.repo.Delete(ctx, gameID); err != nil {
			if errors.Is(err, bowlingdb.ErrNotFound) {
				return results.FailureResult[struct{}, error](ErrGameNotFound), nil
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		s.metrics.SetActiveGames(ctx, s.repo.Count(ctx))
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}
	return nil
}
