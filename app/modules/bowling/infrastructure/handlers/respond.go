package bowlinghandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a service or engine error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bowlingservice.ErrInvalidPins):
		return http.StatusBadRequest
	case errors.Is(err, bowlingservice.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, bowlingservice.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, bowlinggame.ErrFramePinsExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, bowlinggame.ErrExtraRollWithOpenTenthFrame),
		errors.Is(err, bowlinggame.ErrRollWithGameCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	resp := errorResponse{Error: err.Error()}
	if reason := bowlingservice.RejectionReason(err); reason != "unknown" {
		resp.Reason = reason
	}
	writeJSON(w, status, resp)
}
