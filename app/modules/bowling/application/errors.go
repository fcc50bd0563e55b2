package bowlingservice

import "errors"

// Domain errors for the bowling service. Handlers treat these as normal
// outcomes rather than server faults.
var (
	// ErrInvalidPins indicates a roll outside 0..10 pins.
	ErrInvalidPins = errors.New("pins must be between 0 and 10")

	// ErrGameNotFound indicates no live game has the requested id.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the service cannot host another game right now.
	ErrTooManyGames = errors.New("too many active games")
)
