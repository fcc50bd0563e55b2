package bowlinghandlers

import (
	"context"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	CreateGameFunc      func(ctx context.Context) (*bowlingservice.CreatedGame, error)
	RollFunc            func(ctx context.Context, gameID uuid.UUID, pins int) (bowlingservice.GameOperationResult, error)
	GetGameFunc         func(ctx context.Context, gameID uuid.UUID) (*bowlingservice.GameView, error)
	RestartGameFunc     func(ctx context.Context, gameID uuid.UUID) (bowlingservice.GameOperationResult, error)
	DeleteGameFunc      func(ctx context.Context, gameID uuid.UUID) error
	ExportScorecardFunc func(ctx context.Context, gameID uuid.UUID) ([]byte, error)
	ScoreChartFunc      func(ctx context.Context, gameID uuid.UUID) ([]byte, error)
}

func (f *FakeService) CreateGame(ctx context.Context) (*bowlingservice.CreatedGame, error) {
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx)
	}
	id := uuid.New()
	return &bowlingservice.CreatedGame{Game: bowlingservice.GameView{ID: id, CurrentFrame: 1}, Token: "token"}, nil
}

func (f *FakeService) Roll(ctx context.Context, gameID uuid.UUID, pins int) (bowlingservice.GameOperationResult, error) {
	if f.RollFunc != nil {
		return f.RollFunc(ctx, gameID, pins)
	}
	return bowlingservice.GameOperationResult{Success: &bowlingservice.GameView{ID: gameID, Score: pins}}, nil
}

func (f *FakeService) GetGame(ctx context.Context, gameID uuid.UUID) (*bowlingservice.GameView, error) {
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return &bowlingservice.GameView{ID: gameID}, nil
}

func (f *FakeService) RestartGame(ctx context.Context, gameID uuid.UUID) (bowlingservice.GameOperationResult, error) {
	if f.RestartGameFunc != nil {
		return f.RestartGameFunc(ctx, gameID)
	}
	return bowlingservice.GameOperationResult{Success: &bowlingservice.GameView{ID: gameID}}, nil
}

func (f *FakeService) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, gameID)
	}
	return nil
}

func (f *FakeService) ExportScorecard(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	if f.ExportScorecardFunc != nil {
		return f.ExportScorecardFunc(ctx, gameID)
	}
	return []byte("xlsx"), nil
}

func (f *FakeService) ScoreChart(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	if f.ScoreChartFunc != nil {
		return f.ScoreChartFunc(ctx, gameID)
	}
	return []byte("png"), nil
}

var _ bowlingservice.Service = (*FakeService)(nil)
