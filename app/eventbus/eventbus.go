package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes domain events.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

type correlationIDKey struct{}

// WithCorrelationID attaches a correlation id that Publish copies onto every message.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext returns the correlation id attached to ctx, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// eventBus implements EventBus on top of a watermill publisher.
type eventBus struct {
	publisher message.Publisher
	closers   []func() error
	logger    *slog.Logger
}

// NewMessage marshals payload into a watermill message carrying the
// correlation id found in ctx, or a fresh one.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	correlationID := CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	msg.SetContext(ctx)
	return msg, nil
}

func (eb *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}

	eb.logger.DebugContext(ctx, "Publishing message",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
		slog.String("correlation_id", middleware.MessageCorrelationID(msg)),
	)

	if err := eb.publisher.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Close() error {
	var firstErr error
	for _, closeFn := range eb.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// InMemoryEventBus delivers events to subscribers in the same process.
type InMemoryEventBus struct {
	eventBus
	pubsub *gochannel.GoChannel
}

// NewInMemoryEventBus returns an EventBus backed by a watermill go channel.
// Events published with no subscriber are dropped.
func NewInMemoryEventBus(logger *slog.Logger) *InMemoryEventBus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))

	return &InMemoryEventBus{
		eventBus: eventBus{
			publisher: pubsub,
			closers:   []func() error{pubsub.Close},
			logger:    logger,
		},
		pubsub: pubsub,
	}
}

// Subscribe returns the messages published on topic from now on. Each
// message must be acked before the next one is delivered.
func (b *InMemoryEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// NewNATSEventBus connects to NATS, makes sure the bowling JetStream stream
// exists and publishes events into it.
func NewNATSEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}
	if err := InitializeStreams(ctx, js, logger); err != nil {
		natsConn.Close()
		return nil, err
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               natsURL,
			Marshaler:         &wmnats.NATSMarshaler{},
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			JetStream: wmnats.JetStreamConfig{
				AutoProvision: false,
			},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		natsConn.Close()
		logger.Error("Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	return &eventBus{
		publisher: publisher,
		closers: []func() error{
			publisher.Close,
			func() error { natsConn.Close(); return nil },
		},
		logger: logger,
	}, nil
}
