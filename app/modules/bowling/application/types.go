package bowlingservice

import (
	"time"

	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
)

// FrameView is one column of a scoresheet.
type FrameView struct {
	Number       int    `json:"number"`
	Rolls        []int  `json:"rolls"`
	Mark         string `json:"mark"`
	Score        int    `json:"score"`
	RunningTotal int    `json:"running_total"`
}

// GameView is a read-only snapshot of a game.
type GameView struct {
	ID           uuid.UUID   `json:"id"`
	Score        int         `json:"score"`
	RollCount    int         `json:"roll_count"`
	CurrentFrame int         `json:"current_frame"`
	Complete     bool        `json:"complete"`
	Frames       []FrameView `json:"frames"`
	CreatedAt    time.Time   `json:"created_at"`
}

// CreatedGame is returned when a game is started.
type CreatedGame struct {
	Game  GameView `json:"game"`
	Token string   `json:"token"`
}

// GameOperationResult is either the updated game or the reason it was not changed.
type GameOperationResult = results.OperationResult[GameView, error]

// NewGameView snapshots g. The caller must hold the game's lock.
func NewGameView(id uuid.UUID, createdAt time.Time, g *bowlinggame.Game) GameView {
	frames := g.Frames()
	scores := g.FrameScores()
	totals := g.RunningTotals()

	views := make([]FrameView, len(frames))
	for i, f := range frames {
		rolls := f.Rolls()
		if tenth, ok := f.(*bowlinggame.TenthFrame); ok {
			if extra, ok := tenth.ExtraRoll(); ok {
				rolls = append(rolls, extra)
			}
		}
		pins := make([]int, len(rolls))
		for j, r := range rolls {
			pins[j] = r.Pins
		}

		views[i] = FrameView{
			Number:       i + 1,
			Rolls:        pins,
			Mark:         f.String(),
			Score:        scores[i],
			RunningTotal: totals[i],
		}
	}

	return GameView{
		ID:           id,
		Score:        g.Score(),
		RollCount:    g.Len(),
		CurrentFrame: g.CurrentFrame() + 1,
		Complete:     g.IsComplete(),
		Frames:       views,
		CreatedAt:    createdAt,
	}
}
