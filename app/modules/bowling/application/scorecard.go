package bowlingservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/tenpin/pkg/results"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const scorecardSheet = "Scorecard"

// ExportScorecard renders a live game as an XLSX scoresheet.
func (s *BowlingService) ExportScorecard(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "ExportScorecard", gameID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		view, err := s.snapshot(ctx, gameID)
		if errors.Is(err, ErrGameNotFound) {
			return results.FailureResult[[]byte, error](err), nil
		}
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		data, err := BuildScorecardXLSX(view)
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

// BuildScorecardXLSX lays a game out as a scoresheet: one column per frame,
// with rows for the marks, the rolls, the frame scores and the running total.
func BuildScorecardXLSX(view GameView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scorecardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]any{
		{"Frame"},
		{"Mark"},
		{"Rolls"},
		{"Frame score"},
		{"Running total"},
	}
	for _, frame := range view.Frames {
		rolls := ""
		for i, p := range frame.Rolls {
			if i > 0 {
				rolls += " "
			}
			rolls += fmt.Sprint(p)
		}
		rows[0] = append(rows[0], frame.Number)
		rows[1] = append(rows[1], frame.Mark)
		rows[2] = append(rows[2], rolls)
		rows[3] = append(rows[3], frame.Score)
		rows[4] = append(rows[4], frame.RunningTotal)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(scorecardSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	summary := [][]any{
		{"Game", view.ID.String()},
		{"Total", view.Score},
		{"Rolls", view.RollCount},
		{"Complete", view.Complete},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, len(rows)+2+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(scorecardSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
