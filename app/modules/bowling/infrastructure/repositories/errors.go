package bowlingdb

import "errors"

// Sentinel errors for the game store.
var (
	// ErrNotFound indicates no game is stored under the requested id.
	ErrNotFound = errors.New("game not found")

	// ErrCapacityReached indicates the store already holds its configured maximum of games.
	ErrCapacityReached = errors.New("game capacity reached")
)
