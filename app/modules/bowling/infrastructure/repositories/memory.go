package bowlingdb

import (
	"context"
	"sync"
	"time"

	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	"github.com/google/uuid"
)

// Entry is a stored game. Game is not safe for concurrent use, so every read
// or write of it must go through WithGame.
type Entry struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	game      *bowlinggame.Game
	updatedAt time.Time
}

// WithGame runs fn while holding the entry's lock.
func (e *Entry) WithGame(fn func(g *bowlinggame.Game) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn(e.game)
	e.updatedAt = time.Now().UTC()
	return err
}

// UpdatedAt returns when the game was last touched.
func (e *Entry) UpdatedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updatedAt
}

// MemoryRepository keeps games in process memory. Games are lost on restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	games    map[uuid.UUID]*Entry
	maxGames int
}

// NewMemoryRepository returns an empty store. A maxGames of zero or less
// means unbounded.
func NewMemoryRepository(maxGames int) *MemoryRepository {
	return &MemoryRepository{
		games:    make(map[uuid.UUID]*Entry),
		maxGames: maxGames,
	}
}

func (r *MemoryRepository) Create(ctx context.Context) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxGames > 0 && len(r.games) >= r.maxGames {
		return nil, ErrCapacityReached
	}

	now := time.Now().UTC()
	entry := &Entry{
		ID:        uuid.New(),
		CreatedAt: now,
		game:      bowlinggame.NewGame(),
		updatedAt: now,
	}
	r.games[entry.ID] = entry
	return entry, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return ErrNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

var _ Repository = (*MemoryRepository)(nil)
