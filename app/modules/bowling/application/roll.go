package bowlingservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/events"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
)

// Roll records one roll on a live game.
//
// Rolls the engine refuses, out-of-range pins and unknown games come back as
// failure results; only infrastructure problems are returned as errors.
func (s *BowlingService) Roll(ctx context.Context, gameID uuid.UUID, pins int) (GameOperationResult, error) {
	return withTelemetry(s, ctx, "Roll", gameID, func(ctx context.Context) (GameOperationResult, error) {
		if pins < 0 || pins > bowlinggame.Pins {
			s.metrics.RecordRejectedRoll(ctx, RejectionReason(ErrInvalidPins))
			return results.FailureResult[GameView, error](ErrInvalidPins), nil
		}

		entry, err := s.lookup(ctx, gameID)
		if errors.Is(err, ErrGameNotFound) {
			return results.FailureResult[GameView, error](ErrGameNotFound), nil
		}
		if err != nil {
			return GameOperationResult{}, err
		}

		var (
			view         GameView
			frame        int
			lastMark     string
			completedNow bool
		)
		rollErr := entry.WithGame(func(g *bowlinggame.Game) error {
			frame = g.CurrentFrame()
			wasComplete := g.IsComplete()

			if err := g.Roll(pins); err != nil {
				return err
			}

			marks := strings.Split(g.Frames()[frame].String(), " | ")
			lastMark = marks[len(marks)-1]
			completedNow = !wasComplete && g.IsComplete()
			view = NewGameView(entry.ID, entry.CreatedAt, g)
			return nil
		})

		if rollErr != nil {
			reason := RejectionReason(rollErr)
			s.metrics.RecordRejectedRoll(ctx, reason)
			s.logger.InfoContext(ctx, "Roll rejected",
				slog.String("game_id", gameID.String()),
				slog.Int("pins", pins),
				slog.String("reason", reason),
			)
			s.publish(ctx, bowlingevents.RollRejectedV1, bowlingevents.RollRejectedPayloadV1{
				GameID: gameID.String(),
				Frame:  frame + 1,
				Pins:   pins,
				Reason: reason,
			})
			return results.FailureResult[GameView, error](rollErr), nil
		}

		s.metrics.RecordRoll(ctx, pins)
		switch lastMark {
		case "X":
			s.metrics.RecordStrike(ctx)
		case "/":
			s.metrics.RecordSpare(ctx)
		}

		s.publish(ctx, bowlingevents.RollRecordedV1, bowlingevents.RollRecordedPayloadV1{
			GameID:     gameID.String(),
			Frame:      frame + 1,
			Pins:       pins,
			Score:      view.Score,
			RollCount:  view.RollCount,
			RecordedAt: time.Now().UTC(),
		})

		if completedNow {
			totals := make([]int, len(view.Frames))
			for i, f := range view.Frames {
				totals[i] = f.RunningTotal
			}
			s.metrics.RecordGameCompleted(ctx, view.Score)
			s.logger.InfoContext(ctx, "Game completed",
				slog.String("game_id", gameID.String()),
				slog.Int("final_score", view.Score),
			)
			s.publish(ctx, bowlingevents.GameCompletedV1, bowlingevents.GameCompletedPayloadV1{
				GameID:        gameID.String(),
				FinalScore:    view.Score,
				RunningTotals: totals,
				CompletedAt:   time.Now().UTC(),
			})
		}

		return results.SuccessResult[GameView, error](view), nil
	})
}

// RejectionReason maps a rejected roll to a stable, label-safe reason.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPins):
		return "invalid_pins"
	case errors.Is(err, bowlinggame.ErrFramePinsExceeded):
		return "frame_pins_exceeded"
	case errors.Is(err, bowlinggame.ErrExtraRollWithOpenTenthFrame):
		return "extra_roll_with_open_tenth_frame"
	case errors.Is(err, bowlinggame.ErrRollWithGameCompleted):
		return "roll_with_game_completed"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	default:
		return "unknown"
	}
}
