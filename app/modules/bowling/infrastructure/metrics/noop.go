package bowlingmetrics

import (
	"context"
	"time"
)

// NoOpMetrics discards every measurement.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordRoll(context.Context, int)                                {}
func (NoOpMetrics) RecordStrike(context.Context)                                   {}
func (NoOpMetrics) RecordSpare(context.Context)                                    {}
func (NoOpMetrics) RecordRejectedRoll(context.Context, string)                     {}
func (NoOpMetrics) RecordGameCompleted(context.Context, int)                       {}
func (NoOpMetrics) SetActiveGames(context.Context, int)                            {}

var _ BowlingMetrics = NoOpMetrics{}
