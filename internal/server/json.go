package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playperu/geoguess/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeGameError maps engine errors to HTTP statuses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidPlayerCount),
		errors.Is(err, game.ErrInvalidScoreToWin),
		errors.Is(err, game.ErrUnknownCountry),
		errors.Is(err, game.ErrNoSuggestion):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrNoActiveRound),
		errors.Is(err, game.ErrSessionEnded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
