package bowlingmetrics

import (
	"context"
	"time"
)

// BowlingMetrics records what happens to games served by the bowling module.
type BowlingMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)

	RecordRoll(ctx context.Context, pins int)
	RecordStrike(ctx context.Context)
	RecordSpare(ctx context.Context)
	RecordRejectedRoll(ctx context.Context, reason string)
	RecordGameCompleted(ctx context.Context, finalScore int)
	SetActiveGames(ctx context.Context, count int)
}
