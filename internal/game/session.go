// Package game implements the turn and scoring rules of a geoguess session
// and the controller presentation code drives it through.
package game

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"golang.org/x/text/message"

	"github.com/playperu/geoguess/internal/geo"
	"github.com/playperu/geoguess/internal/geoguess"
	"github.com/playperu/geoguess/internal/reactive"
)

var (
	ErrInvalidPlayerCount = errors.New("player count must be positive")
	ErrInvalidScoreToWin  = errors.New("score to win must be positive")
	ErrNoCountries        = errors.New("country dataset is empty")
)

// maxPlacements is the number of podium places reported when a session ends.
const maxPlacements = 3

// Rand is the random source used to draw mystery countries.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Phase is derived from session data; it is never stored.
type Phase int

const (
	PhaseNoSession Phase = iota
	PhaseRoundActive
	PhaseSessionEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNoSession:
		return "no_session"
	case PhaseRoundActive:
		return "round_active"
	case PhaseSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// Outcome describes the effect of one guess.
type Outcome struct {
	Correct  bool             `json:"correct"`
	Country  geoguess.Country `json:"country"`
	Player   int              `json:"player"`
	Guesses  int              `json:"guesses"`
	Points   int              `json:"points,omitempty"`
	Distance float64          `json:"distance,omitempty"`
	Message  string           `json:"message"`
	Ended    bool             `json:"ended"`
}

// Session owns the mutable state of one game. Every piece of state lives in
// a reactive cell so presentation code can subscribe to it.
//
// The zero phase is PhaseNoSession; Start moves to PhaseRoundActive and a
// winning score moves to PhaseSessionEnded.
type Session struct {
	Scores  *reactive.Cell[[]int]
	Turn    *reactive.Cell[int]
	Round   *reactive.Cell[int]
	Mystery *reactive.Cell[geoguess.Country]
	Guesses *reactive.Cell[[]geoguess.IncorrectGuess]
	Message *reactive.Cell[string]
	Ended   *reactive.Cell[bool]

	atlas      *geoguess.Atlas
	rng        Rand
	printer    *message.Printer
	scoreToWin int
}

// NewSession returns a session in PhaseNoSession that draws countries from
// atlas using rng.
func NewSession(atlas *geoguess.Atlas, rng Rand) *Session {
	return &Session{
		Scores:  reactive.NewFunc[[]int](nil, slices.Equal[[]int]),
		Turn:    reactive.New(0),
		Round:   reactive.New(0),
		Mystery: reactive.NewFunc(geoguess.Country{}, sameCountry),
		Guesses: reactive.NewFunc[[]geoguess.IncorrectGuess](nil, slices.Equal[[]geoguess.IncorrectGuess]),
		Message: reactive.New(""),
		Ended:   reactive.New(false),
		atlas:   atlas,
		rng:     rng,
		printer: newPrinter(),
	}
}

func sameCountry(a, b geoguess.Country) bool {
	return a.Code == b.Code
}

// Phase reports the current lifecycle phase.
func (s *Session) Phase() Phase {
	switch {
	case s.Ended.Get():
		return PhaseSessionEnded
	case s.Mystery.Get().Code == "":
		return PhaseNoSession
	default:
		return PhaseRoundActive
	}
}

// ScoreToWin returns the threshold set by Start.
func (s *Session) ScoreToWin() int {
	return s.scoreToWin
}

// Start begins a new session for playerCount players. Invalid arguments
// are rejected before any state changes.
func (s *Session) Start(playerCount, scoreToWin int) error {
	if playerCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, playerCount)
	}
	if scoreToWin <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidScoreToWin, scoreToWin)
	}
	if s.atlas == nil || s.atlas.Len() == 0 {
		return ErrNoCountries
	}

	s.scoreToWin = scoreToWin
	s.Ended.Set(false)
	s.Message.Set("")
	s.Scores.Set(make([]int, playerCount))
	s.Turn.Set(0)
	s.Round.Set(0)
	s.drawMystery()
	return nil
}

// SubmitGuess applies a guess for the current player. A correct guess
// scores, passes the turn and starts the next round; a wrong one is added
// to the round's history with its distance from the mystery country.
//
// It panics outside PhaseRoundActive.
func (s *Session) SubmitGuess(country geoguess.Country) Outcome {
	s.mustBeActive("SubmitGuess")

	mystery := s.Mystery.Get()
	history := s.Guesses.Get()
	player := s.Turn.Get()

	if sameCountry(country, mystery) {
		misses := len(history)
		points := Points(misses)
		s.Message.Set(s.printer.Sprintf(msgCorrect, player+1, country.Name, misses+1, points))

		scores := slices.Clone(s.Scores.Get())
		scores[player] += points
		s.Scores.Set(scores)

		s.nextTurn()
		s.drawMystery()
		ended := s.CheckForWinner()

		return Outcome{
			Correct: true,
			Country: country,
			Player:  player + 1,
			Guesses: misses + 1,
			Points:  points,
			Message: s.Message.Get(),
			Ended:   ended,
		}
	}

	distance := geo.DistanceKm(mystery.Latitude, mystery.Longitude, country.Latitude, country.Longitude)
	bearing := geo.Bearing(country.Latitude, country.Longitude, mystery.Latitude, mystery.Longitude)
	s.Message.Set(s.printer.Sprintf(msgIncorrect, country.Name, distance))

	next := make([]geoguess.IncorrectGuess, len(history), len(history)+1)
	copy(next, history)
	next = append(next, geoguess.IncorrectGuess{
		Country:   country,
		Distance:  distance,
		Bearing:   bearing,
		Direction: geo.Compass(bearing),
	})
	s.Guesses.Set(next)

	return Outcome{
		Country:  country,
		Player:   player + 1,
		Guesses:  len(next),
		Distance: distance,
		Message:  s.Message.Get(),
	}
}

// Forfeit ends the round without scoring, passes the turn and starts the
// next round. It panics outside PhaseRoundActive.
func (s *Session) Forfeit() {
	s.mustBeActive("Forfeit")

	s.Message.Set(s.printer.Sprintf(msgForfeit, s.Turn.Get()+1, s.Mystery.Get().Name))
	s.nextTurn()
	s.drawMystery()
}

// CheckForWinner ends the session when any score has reached the
// threshold and reports whether it did.
func (s *Session) CheckForWinner() bool {
	if s.scoreToWin <= 0 {
		return false
	}
	for _, score := range s.Scores.Get() {
		if score >= s.scoreToWin {
			s.Ended.Set(true)
			return true
		}
	}
	return false
}

// Standings returns every player ordered by score, highest first. Equal
// scores keep player order.
func (s *Session) Standings() []geoguess.Placement {
	scores := s.Scores.Get()
	out := make([]geoguess.Placement, len(scores))
	for i, score := range scores {
		out[i] = geoguess.Placement{Player: i + 1, Score: score}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Placements returns up to three podium places once the session has
// ended, and nil before that.
func (s *Session) Placements() []geoguess.Placement {
	if s.Phase() != PhaseSessionEnded {
		return nil
	}
	standings := s.Standings()
	return standings[:min(maxPlacements, len(standings))]
}

// Reset abandons the session and returns to PhaseNoSession.
func (s *Session) Reset() {
	s.scoreToWin = 0
	s.Ended.Set(false)
	s.Mystery.Set(geoguess.Country{})
	s.Guesses.Set(nil)
	s.Scores.Set(nil)
	s.Turn.Set(0)
	s.Round.Set(0)
	s.Message.Set("")
}

func (s *Session) nextTurn() {
	s.Turn.Set((s.Turn.Get() + 1) % len(s.Scores.Get()))
}

// drawMystery picks the next mystery country and clears the round history.
func (s *Session) drawMystery() {
	s.Mystery.Set(s.atlas.At(s.rng.Intn(s.atlas.Len())))
	s.Guesses.Set(nil)
	s.Round.Set(s.Round.Get() + 1)
}

func (s *Session) mustBeActive(op string) {
	if p := s.Phase(); p != PhaseRoundActive {
		panic(fmt.Sprintf("game: %s called in phase %s", op, p))
	}
}
