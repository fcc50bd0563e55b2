package bowlinggame

// FrameCount is the number of frames in a game.
const FrameCount = 10

const lastFrame = FrameCount - 1

// Game scores a single player's game. It is not safe for concurrent use;
// callers sharing a Game must serialize access themselves.
type Game struct {
	frames  [FrameCount]Frame
	current int
	count   int
}

// NewGame returns a game with ten empty frames, ready for the first roll.
func NewGame() *Game {
	g := &Game{}
	g.Restart()
	return g
}

// Restart discards every roll and returns the game to its fresh state.
func (g *Game) Restart() {
	for i := 0; i < lastFrame; i++ {
		g.frames[i] = NewNormalFrame()
	}
	g.frames[lastFrame] = NewTenthFrame()
	g.current = 0
	g.count = 0
}

// Roll records a ball knocking down pins.
//
// The roll counter is bumped before the frame validates the roll, so a
// rejected roll still counts towards Len.
func (g *Game) Roll(pins int) error {
	g.count++

	frame := g.frames[g.current]
	if err := frame.AddRoll(pins); err != nil {
		return err
	}

	if g.current < lastFrame && frame.IsComplete() {
		g.current++
	}
	return nil
}

// Score returns the total so far. Bonuses still waiting on later rolls
// contribute nothing until those rolls arrive.
func (g *Game) Score() int {
	total := 0
	for _, score := range g.FrameScores() {
		total += score
	}
	return total
}

// FrameScores returns each frame's contribution to the total.
func (g *Game) FrameScores() []int {
	scores := make([]int, FrameCount)
	for i, frame := range g.frames {
		scores[i] = frame.Score(g.frames[i+1:])
	}
	return scores
}

// RunningTotals returns the cumulative score after each frame, as printed
// on a scoresheet.
func (g *Game) RunningTotals() []int {
	totals := g.FrameScores()
	for i := 1; i < len(totals); i++ {
		totals[i] += totals[i-1]
	}
	return totals
}

// Len returns the number of rolls attempted, including rejected ones.
func (g *Game) Len() int {
	return g.count
}

// CurrentFrame returns the zero-based index of the frame taking the next roll.
func (g *Game) CurrentFrame() int {
	return g.current
}

// Frames returns the game's frames in order. The slice is a copy; the frames
// are not.
func (g *Game) Frames() []Frame {
	out := make([]Frame, FrameCount)
	copy(out, g.frames[:])
	return out
}

// IsComplete reports whether the tenth frame has been fully resolved.
func (g *Game) IsComplete() bool {
	return g.frames[lastFrame].IsComplete()
}
