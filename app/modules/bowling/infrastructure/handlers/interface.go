package bowlinghandlers

import "net/http"

// Handlers serves the games HTTP API.
type Handlers interface {
	HandleCreateGame(w http.ResponseWriter, r *http.Request)
	HandleGetGame(w http.ResponseWriter, r *http.Request)
	HandleRoll(w http.ResponseWriter, r *http.Request)
	HandleRestartGame(w http.ResponseWriter, r *http.Request)
	HandleDeleteGame(w http.ResponseWriter, r *http.Request)
	HandleScorecard(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)
}
