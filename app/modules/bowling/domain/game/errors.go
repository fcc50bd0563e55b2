package bowlinggame

import (
	"errors"
	"fmt"
)

// ErrBowling is the root of every rejected-roll error. A rejected roll never
// corrupts the game; it only refuses that single roll.
var ErrBowling = errors.New("bowling")

var (
	// ErrFramePinsExceeded indicates a roll would knock down more pins than the frame has standing.
	ErrFramePinsExceeded = fmt.Errorf("%w: a frame's rolls cannot exceed 10 pins", ErrBowling)

	// ErrExtraRollWithOpenTenthFrame indicates a third roll on a tenth frame that was neither a strike nor a spare.
	ErrExtraRollWithOpenTenthFrame = fmt.Errorf("%w: can't throw an extra roll with an open tenth frame", ErrBowling)

	// ErrRollWithGameCompleted indicates a roll after the tenth frame's extra roll was recorded.
	ErrRollWithGameCompleted = fmt.Errorf("%w: can't roll once the game is completed", ErrBowling)
)
