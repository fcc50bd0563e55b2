package bowlinghandlers

import (
	"log/slog"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	"go.opentelemetry.io/otel/trace"
)

// BowlingHandlers implements the Handlers interface over HTTP.
type BowlingHandlers struct {
	service bowlingservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewBowlingHandlers creates a new BowlingHandlers instance.
func NewBowlingHandlers(
	service bowlingservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &BowlingHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
