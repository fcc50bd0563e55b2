package bowlingservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/events"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	bowlingdb "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

type testDeps struct {
	repo    *FakeGameRepository
	bus     *FakeEventBus
	tokens  *FakeTokenService
	service *BowlingService
}

func newTestService() testDeps {
	repo := NewFakeGameRepository()
	bus := &FakeEventBus{}
	tokens := &FakeTokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	return testDeps{
		repo:    repo,
		bus:     bus,
		tokens:  tokens,
		service: NewBowlingService(repo, bus, tokens, logger, &bowlingmetrics.NoOpMetrics{}, tracer),
	}
}

func mustCreate(t *testing.T, s *BowlingService) uuid.UUID {
	t.Helper()
	created, err := s.CreateGame(context.Background())
	require.NoError(t, err)
	return created.Game.ID
}

func rollAll(t *testing.T, s *BowlingService, id uuid.UUID, pins ...int) GameOperationResult {
	t.Helper()
	var last GameOperationResult
	for _, p := range pins {
		res, err := s.Roll(context.Background(), id, p)
		require.NoError(t, err)
		require.True(t, res.IsSuccess(), "roll %d rejected: %v", p, res.Failure)
		last = res
	}
	return last
}

func TestBowlingService_CreateGame(t *testing.T) {
	t.Run("returns a fresh game and token", func(t *testing.T) {
		d := newTestService()

		created, err := d.service.CreateGame(context.Background())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Game.ID)
		assert.Equal(t, "token-"+created.Game.ID.String(), created.Token)
		assert.Equal(t, 0, created.Game.Score)
		assert.Equal(t, 1, created.Game.CurrentFrame)
		assert.Len(t, created.Game.Frames, bowlinggame.FrameCount)
		assert.False(t, created.Game.Complete)
	})

	t.Run("capacity reached", func(t *testing.T) {
		d := newTestService()
		d.repo.CreateFunc = func(ctx context.Context) (*bowlingdb.Entry, error) {
			return nil, bowlingdb.ErrCapacityReached
		}

		created, err := d.service.CreateGame(context.Background())

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrTooManyGames)
	})

	t.Run("token failure removes the game", func(t *testing.T) {
		d := newTestService()
		d.tokens.GenerateGameTokenFunc = func(string) (string, error) {
			return "", errors.New("signing failed")
		}

		created, err := d.service.CreateGame(context.Background())

		assert.Nil(t, created)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CreateGame")
		assert.Equal(t, []string{"Create", "Delete"}, d.repo.Trace())
		assert.Equal(t, 0, d.repo.Count(context.Background()))
	})
}

func TestBowlingService_Roll(t *testing.T) {
	tests := []struct {
		name        string
		setup       []int
		pins        int
		wantFailure error
		wantScore   int
		wantTopics  []string
	}{
		{
			name:       "first roll",
			pins:       7,
			wantScore:  7,
			wantTopics: []string{bowlingevents.RollRecordedV1},
		},
		{
			name:        "pins above ten",
			pins:        11,
			wantFailure: ErrInvalidPins,
		},
		{
			name:        "negative pins",
			pins:        -1,
			wantFailure: ErrInvalidPins,
		},
		{
			name:        "frame overflow",
			setup:       []int{7},
			pins:        5,
			wantFailure: bowlinggame.ErrFramePinsExceeded,
			wantScore:   7,
			wantTopics:  []string{bowlingevents.RollRecordedV1, bowlingevents.RollRejectedV1},
		},
		{
			name:        "extra roll on open tenth",
			setup:       repeatPins(20, 0),
			pins:        3,
			wantFailure: bowlinggame.ErrExtraRollWithOpenTenthFrame,
		},
		{
			name:        "roll after perfect game",
			setup:       repeatPins(12, 10),
			pins:        10,
			wantFailure: bowlinggame.ErrRollWithGameCompleted,
			wantScore:   300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestService()
			id := mustCreate(t, d.service)
			if len(tt.setup) > 0 {
				rollAll(t, d.service, id, tt.setup...)
			}
			d.bus.events = nil

			res, err := d.service.Roll(context.Background(), id, tt.pins)
			require.NoError(t, err)

			view, err := d.service.GetGame(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, view.Score)

			if tt.wantFailure != nil {
				require.True(t, res.IsFailure())
				assert.ErrorIs(t, *res.Failure, tt.wantFailure)
			} else {
				require.True(t, res.IsSuccess())
				assert.Equal(t, tt.wantScore, res.Success.Score)
			}

			if tt.wantTopics != nil {
				topics := d.bus.Topics()
				assert.Equal(t, tt.wantTopics[len(tt.wantTopics)-1], topics[len(topics)-1])
			}
		})
	}
}

func TestBowlingService_Roll_UnknownGame(t *testing.T) {
	d := newTestService()

	res, err := d.service.Roll(context.Background(), uuid.New(), 5)

	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, *res.Failure, ErrGameNotFound)
	assert.Empty(t, d.bus.Topics())
}

func TestBowlingService_Roll_RepositoryError(t *testing.T) {
	d := newTestService()
	d.repo.GetFunc = func(ctx context.Context, id uuid.UUID) (*bowlingdb.Entry, error) {
		return nil, errors.New("store offline")
	}

	res, err := d.service.Roll(context.Background(), uuid.New(), 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Roll: store offline")
	assert.False(t, res.IsSuccess())
}

func TestBowlingService_Roll_RejectedPayload(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	rollAll(t, d.service, id, 7)

	_, err := d.service.Roll(context.Background(), id, 5)
	require.NoError(t, err)

	payload, ok := d.bus.Last(bowlingevents.RollRejectedV1)
	require.True(t, ok)
	assert.Equal(t, bowlingevents.RollRejectedPayloadV1{
		GameID: id.String(),
		Frame:  1,
		Pins:   5,
		Reason: "frame_pins_exceeded",
	}, payload)
}

func TestBowlingService_Roll_CompletesGame(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)

	last := rollAll(t, d.service, id, append(repeatPins(20, 5), 5)...)

	require.True(t, last.IsSuccess())
	assert.True(t, last.Success.Complete)
	assert.Equal(t, 150, last.Success.Score)
	assert.Equal(t, 21, last.Success.RollCount)
	assert.Equal(t, []int{5, 5, 5}, last.Success.Frames[9].Rolls)

	payload, ok := d.bus.Last(bowlingevents.GameCompletedV1)
	require.True(t, ok)
	completed := payload.(bowlingevents.GameCompletedPayloadV1)
	assert.Equal(t, id.String(), completed.GameID)
	assert.Equal(t, 150, completed.FinalScore)
	assert.Equal(t, []int{15, 30, 45, 60, 75, 90, 105, 120, 135, 150}, completed.RunningTotals)

	completions := 0
	for _, topic := range d.bus.Topics() {
		if topic == bowlingevents.GameCompletedV1 {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}

func TestBowlingService_Roll_PublishFailureDoesNotFailRoll(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	d.bus.PublishFunc = func(ctx context.Context, topic string, payload any) error {
		return errors.New("broker down")
	}

	res, err := d.service.Roll(context.Background(), id, 10)

	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, 10, res.Success.Score)
	assert.Equal(t, 2, res.Success.CurrentFrame)
}

func TestBowlingService_Roll_TenthFrameMarkCounters(t *testing.T) {
	tests := []struct {
		name        string
		tenth       []int
		wantMark    string
		wantStrikes int
		wantSpares  int
	}{
		{name: "gutter then ten", tenth: []int{0, 10}, wantMark: "0 | /", wantStrikes: 0, wantSpares: 1},
		{name: "strike gutter ten", tenth: []int{10, 0, 10}, wantMark: "X | 0 | /", wantStrikes: 1, wantSpares: 1},
		{name: "spare then strike", tenth: []int{0, 10, 10}, wantMark: "0 | / | X", wantStrikes: 1, wantSpares: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			metrics, err := bowlingmetrics.NewPrometheusMetrics(reg)
			require.NoError(t, err)

			d := newTestService()
			d.service.metrics = metrics
			id := mustCreate(t, d.service)

			last := rollAll(t, d.service, id, append(repeatPins(18, 0), tt.tenth...)...)
			assert.Equal(t, tt.wantMark, last.Success.Frames[9].Mark)

			expected := fmt.Sprintf(`
# HELP tenpin_spares_total Frames closed with a spare.
# TYPE tenpin_spares_total counter
tenpin_spares_total %d
# HELP tenpin_strikes_total Frames opened with a strike.
# TYPE tenpin_strikes_total counter
tenpin_strikes_total %d
`, tt.wantSpares, tt.wantStrikes)
			assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "tenpin_spares_total", "tenpin_strikes_total"))
		})
	}
}

func TestBowlingService_RestartGame(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	rollAll(t, d.service, id, 10, 3, 4)

	res, err := d.service.RestartGame(context.Background(), id)

	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, id, res.Success.ID)
	assert.Equal(t, 0, res.Success.Score)
	assert.Equal(t, 0, res.Success.RollCount)
	assert.Equal(t, 1, res.Success.CurrentFrame)

	payload, ok := d.bus.Last(bowlingevents.GameRestartedV1)
	require.True(t, ok)
	assert.Equal(t, bowlingevents.GameRestartedPayloadV1{GameID: id.String(), PreviousScore: 24}, payload)

	res, err = d.service.RestartGame(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, *res.Failure, ErrGameNotFound)
}

func TestBowlingService_DeleteGame(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)

	require.NoError(t, d.service.DeleteGame(context.Background(), id))

	_, err := d.service.GetGame(context.Background(), id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	err = d.service.DeleteGame(context.Background(), id)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestBowlingService_GetGame_FrameViews(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	rollAll(t, d.service, id, 10, 3, 7, 4)

	view, err := d.service.GetGame(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 3, view.CurrentFrame)
	assert.Equal(t, 4, view.RollCount)

	assert.Equal(t, FrameView{Number: 1, Rolls: []int{10}, Mark: "X", Score: 20, RunningTotal: 20}, view.Frames[0])
	assert.Equal(t, FrameView{Number: 2, Rolls: []int{3, 7}, Mark: "3 | /", Score: 14, RunningTotal: 34}, view.Frames[1])
	assert.Equal(t, FrameView{Number: 3, Rolls: []int{4}, Mark: "4", Score: 4, RunningTotal: 38}, view.Frames[2])
	assert.Equal(t, 38, view.Score)
}

func TestBowlingService_ExportScorecard(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	rollAll(t, d.service, id, 10, 9, 1, 5)

	data, err := d.service.ExportScorecard(context.Background(), id)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	mark, err := f.GetCellValue(scorecardSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "X", mark)

	spare, err := f.GetCellValue(scorecardSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "9 | /", spare)

	total, err := f.GetCellValue(scorecardSheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "40", total)

	_, err = d.service.ExportScorecard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestBowlingService_ScoreChart(t *testing.T) {
	d := newTestService()
	id := mustCreate(t, d.service)
	rollAll(t, d.service, id, 10, 10, 10)

	data, err := d.service.ScoreChart(context.Background(), id)

	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestBowlingService_UnknownGameIsNotAServerError(t *testing.T) {
	var logs bytes.Buffer
	d := newTestService()
	d.service.logger = slog.New(slog.NewTextHandler(&logs, nil))
	ctx := context.Background()
	id := uuid.New()

	_, err := d.service.GetGame(ctx, id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	err = d.service.DeleteGame(ctx, id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = d.service.ExportScorecard(ctx, id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = d.service.ScoreChart(ctx, id)
	assert.ErrorIs(t, err, ErrGameNotFound)

	res, err := d.service.Roll(ctx, id, 3)
	require.NoError(t, err)
	assert.ErrorIs(t, *res.Failure, ErrGameNotFound)

	assert.NotContains(t, logs.String(), "level=ERROR")
	assert.Equal(t, 5, strings.Count(logs.String(), "Operation returned failure result"))
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "invalid_pins", RejectionReason(ErrInvalidPins))
	assert.Equal(t, "frame_pins_exceeded", RejectionReason(bowlinggame.ErrFramePinsExceeded))
	assert.Equal(t, "extra_roll_with_open_tenth_frame", RejectionReason(bowlinggame.ErrExtraRollWithOpenTenthFrame))
	assert.Equal(t, "roll_with_game_completed", RejectionReason(bowlinggame.ErrRollWithGameCompleted))
	assert.Equal(t, "game_not_found", RejectionReason(ErrGameNotFound))
	assert.Equal(t, "unknown", RejectionReason(errors.New("other")))
}

func repeatPins(n, pins int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = pins
	}
	return out
}
