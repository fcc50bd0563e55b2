package bowlingservice

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the BowlingService.
type Service interface {
	// Starts a new game and issues the token needed to play it.
	CreateGame(ctx context.Context) (*CreatedGame, error)

	// Records one roll. Rejected rolls come back as a failure result.
	Roll(ctx context.Context, gameID uuid.UUID, pins int) (GameOperationResult, error)

	GetGame(ctx context.Context, gameID uuid.UUID) (*GameView, error)
	RestartGame(ctx context.Context, gameID uuid.UUID) (GameOperationResult, error)
	DeleteGame(ctx context.Context, gameID uuid.UUID) error

	// Renders the scoresheet as an XLSX workbook.
	ExportScorecard(ctx context.Context, gameID uuid.UUID) ([]byte, error)

	// Renders the running total as a PNG line chart.
	ScoreChart(ctx context.Context, gameID uuid.UUID) ([]byte, error)
}
