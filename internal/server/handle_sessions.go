package server

import (
	"fmt"
	"net/http"

	"github.com/playperu/geoguess/internal/game"
	"github.com/playperu/geoguess/internal/geoguess"
)

type CreateSessionRequest struct {
	Players    int `json:"players" minimum:"1"`
	ScoreToWin int `json:"scoreToWin" minimum:"1"`
}

type SessionResponse struct {
	ID    string        `json:"id"`
	State StateResponse `json:"state"`
}

func handleCountries(atlas *geoguess.Atlas) http.HandlerFunc {
	items := countryItems(atlas.All())

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, items)
	}
}

func handleCreateSession(reg *Registry, maxPlayers int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if maxPlayers > 0 && req.Players > maxPlayers {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d players allowed", maxPlayers))
			return
		}

		sess, err := reg.Create(r.Context(), req.Players, req.ScoreToWin)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SessionResponse{ID: sess.id, State: sess.state()})
	}
}

func handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		writeJSON(w, http.StatusOK, SessionResponse{ID: sess.id, State: sess.state()})
	}
}

func handleDeleteSession(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !reg.Delete(sessionFrom(r).id) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type SuggestionsResponse struct {
	Query       string        `json:"query"`
	Suggestions []CountryItem `json:"suggestions"`
}

func handleSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		var items []CountryItem
		sessionFrom(r).do(func(c *game.Controller) {
			items = countryItems(c.SetQuery(q))
		})

		writeJSON(w, http.StatusOK, SuggestionsResponse{Query: q, Suggestions: items})
	}
}

// GuessRequest names the guessed country by Code, or by Query, in which
// case the top suggestion for it is submitted.
type GuessRequest struct {
	Code  string `json:"code,omitempty"`
	Query string `json:"query,omitempty"`
}

type GuessResponse struct {
	Outcome game.Outcome  `json:"outcome"`
	State   StateResponse `json:"state"`
}

func handleGuess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Code == "" && req.Query == "" {
			writeError(w, http.StatusBadRequest, "code or query is required")
			return
		}

		var (
			out game.Outcome
			st  StateResponse
			err error
		)
		sessionFrom(r).do(func(c *game.Controller) {
			if req.Code != "" {
				out, err = c.Guess(r.Context(), req.Code)
			} else {
				c.SetQuery(req.Query)
				out, err = c.GuessTopSuggestion(r.Context())
			}
			st = newStateResponse(c.State())
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{Outcome: out, State: st})
	}
}

func handleForfeit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			st  StateResponse
			err error
		)
		sessionFrom(r).do(func(c *game.Controller) {
			err = c.Forfeit(r.Context())
			st = newStateResponse(c.State())
		})
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, st)
	}
}
