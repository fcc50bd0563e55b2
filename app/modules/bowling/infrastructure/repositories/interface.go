package bowlingdb

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores live games.
type Repository interface {
	Create(ctx context.Context) (*Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) int
}
