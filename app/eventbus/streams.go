package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/events"
	"github.com/nats-io/nats.go/jetstream"
)

// InitializeStreams creates the JetStream streams events are published into.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	streamConfigs := []jetstream.StreamConfig{
		{
			Name:     bowlingevents.BowlingStreamName,
			Subjects: []string{bowlingevents.BowlingStreamName + ".>"},
		},
	}

	for _, streamConfig := range streamConfigs {
		_, err := js.Stream(ctx, streamConfig.Name)
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			if _, err := js.CreateStream(ctx, streamConfig); err != nil {
				logger.Error("Failed to create JetStream stream", slog.String("stream", streamConfig.Name), slog.Any("error", err))
				return err
			}
			logger.Info("Created JetStream stream", slog.String("stream", streamConfig.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream: %w", err)
		}
	}
	return nil
}
