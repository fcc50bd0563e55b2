package bowlinghandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxRollBodyBytes = 1 << 10

type rollRequest struct {
	Pins *int `json:"pins"`
}

func (h *BowlingHandlers) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *BowlingHandlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleCreateGame")
	defer span.End()

	created, err := h.service.CreateGame(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Create game failed", slog.Any("error", err))
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/games/"+created.Game.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

func (h *BowlingHandlers) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetGame(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BowlingHandlers) HandleRoll(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleRoll")
	defer span.End()

	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req rollRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRollBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.Pins == nil {
		writeError(w, http.StatusBadRequest, "body must be {\"pins\": <0-10>}")
		return
	}

	result, err := h.service.Roll(ctx, id, *req.Pins)
	if err != nil {
		h.logger.ErrorContext(ctx, "Roll failed", slog.String("game_id", id.String()), slog.Any("error", err))
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeServiceError(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *BowlingHandlers) HandleRestartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	result, err := h.service.RestartGame(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result.IsFailure() {
		writeServiceError(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *BowlingHandlers) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteGame(ctx, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BowlingHandlers) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	data, err := h.service.ExportScorecard(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "scorecard-"+id.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *BowlingHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	data, err := h.service.ScoreChart(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
