package bowlingservice

import (
	"context"
	"sync"
	"time"

	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/Black-And-White-Club/tenpin/pkg/jwt"
	"github.com/google/uuid"
)

// ------------------------
// Fake Game Repo
// ------------------------

// FakeGameRepository delegates to an in-memory store unless a Func is set.
type FakeGameRepository struct {
	trace []string
	inner *bowlingdb.MemoryRepository

	CreateFunc func(ctx context.Context) (*bowlingdb.Entry, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*bowlingdb.Entry, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

// NewFakeGameRepository initializes a new FakeGameRepository with an empty trace.
func NewFakeGameRepository() *FakeGameRepository {
	return &FakeGameRepository{
		trace: []string{},
		inner: bowlingdb.NewMemoryRepository(0),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameRepository) Create(ctx context.Context) (*bowlingdb.Entry, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx)
	}
	return f.inner.Create(ctx)
}

func (f *FakeGameRepository) Get(ctx context.Context, id uuid.UUID) (*bowlingdb.Entry, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return f.inner.Get(ctx, id)
}

func (f *FakeGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return f.inner.Delete(ctx, id)
}

func (f *FakeGameRepository) Count(ctx context.Context) int {
	return f.inner.Count(ctx)
}

var _ bowlingdb.Repository = (*FakeGameRepository)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

// FakeEventBus records every published event.
type FakeEventBus struct {
	mu          sync.Mutex
	events      []publishedEvent
	PublishFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

// Topics returns the published topics in order.
func (f *FakeEventBus) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Topic
	}
	return out
}

// Last returns the most recent event published on topic.
func (f *FakeEventBus) Last(topic string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Topic == topic {
			return f.events[i].Payload, true
		}
	}
	return nil, false
}

// ------------------------
// Fake Token Service
// ------------------------

type FakeTokenService struct {
	GenerateGameTokenFunc func(gameID string) (string, error)
}

func (f *FakeTokenService) GenerateToken(gameID string, role jwt.Role, ttl time.Duration) (string, error) {
	return "token-" + gameID, nil
}

func (f *FakeTokenService) GenerateGameToken(gameID string) (string, error) {
	if f.GenerateGameTokenFunc != nil {
		return f.GenerateGameTokenFunc(gameID)
	}
	return "token-" + gameID, nil
}

func (f *FakeTokenService) ValidateToken(tokenString string) (*jwt.GameClaims, error) {
	return nil, jwt.ErrInvalidToken
}

var _ jwt.Service = (*FakeTokenService)(nil)
