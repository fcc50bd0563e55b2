package bowlingservice

import (
	"bytes"
	"context"
	"errors"

	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ScoreChart renders the running total of a live game as a PNG.
func (s *BowlingService) ScoreChart(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "ScoreChart", gameID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		view, err := s.snapshot(ctx, gameID)
		if errors.Is(err, ErrGameNotFound) {
			return results.FailureResult[[]byte, error](err), nil
		}
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		data, err := GenerateScoreChart(view)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// GenerateScoreChart produces a PNG line chart of the running total per frame.
func GenerateScoreChart(view GameView) ([]byte, error) {
	xValues := make([]float64, len(view.Frames))
	yValues := make([]float64, len(view.Frames))
	for i, frame := range view.Frames {
		xValues[i] = float64(frame.Number)
		yValues[i] = float64(frame.RunningTotal)
	}

	series := chart.ContinuousSeries{
		Name:    "Running total",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("1f6f4a"),
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    drawing.ColorFromHex("c9a227"),
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:           "Frame",
			ValueFormatter: chart.IntValueFormatter,
			Range: &chart.ContinuousRange{
				Min: 1,
				Max: float64(len(view.Frames)),
			},
		},
		YAxis: chart.YAxis{
			Name:           "Score",
			ValueFormatter: chart.IntValueFormatter,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 300,
			},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
