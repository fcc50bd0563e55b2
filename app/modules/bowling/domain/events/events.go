package bowlingevents

import "time"

// Stream name for every bowling event.
const BowlingStreamName = "bowling"

// Bowling-related topics.
const (
	RollRecordedV1  = "bowling.roll.recorded.v1"
	RollRejectedV1  = "bowling.roll.rejected.v1"
	GameCompletedV1 = "bowling.game.completed.v1"
	GameRestartedV1 = "bowling.game.restarted.v1"
)

// RollRecordedPayloadV1 is published after a roll is accepted.
type RollRecordedPayloadV1 struct {
	GameID     string    `json:"game_id"`
	Frame      int       `json:"frame"`
	Pins       int       `json:"pins"`
	Score      int       `json:"score"`
	RollCount  int       `json:"roll_count"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RollRejectedPayloadV1 is published when the engine refuses a roll.
type RollRejectedPayloadV1 struct {
	GameID string `json:"game_id"`
	Frame  int    `json:"frame"`
	Pins   int    `json:"pins"`
	Reason string `json:"reason"`
}

// GameCompletedPayloadV1 is published once, when the tenth frame resolves.
type GameCompletedPayloadV1 struct {
	GameID        string    `json:"game_id"`
	FinalScore    int       `json:"final_score"`
	RunningTotals []int     `json:"running_totals"`
	CompletedAt   time.Time `json:"completed_at"`
}

// GameRestartedPayloadV1 is published after a game is reset.
type GameRestartedPayloadV1 struct {
	GameID        string `json:"game_id"`
	PreviousScore int    `json:"previous_score"`
}
