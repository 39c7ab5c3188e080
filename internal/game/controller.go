package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/playperu/geoguess/internal/geoguess"
	"github.com/playperu/geoguess/internal/reactive"
	"github.com/playperu/geoguess/internal/suggest"
)

var (
	ErrNoActiveRound  = errors.New("no active round")
	ErrSessionEnded   = errors.New("session has ended")
	ErrUnknownCountry = errors.New("unknown country")
	ErrNoSuggestion   = errors.New("no suggestion to accept")
)

// AssetSource resolves the visuals for a country code.
type AssetSource interface {
	Asset(ctx context.Context, code string) (geoguess.Asset, error)
}

// State is a read-only snapshot of a controller for presentation.
type State struct {
	Phase         Phase
	Round         int
	Turn          int
	Scores        []int
	ScoreTable    []geoguess.Placement
	ScoreToWin    int
	Mystery       geoguess.Country
	Guesses       []geoguess.IncorrectGuess
	PointsOnOffer int
	Progress      float64
	Placements    []geoguess.Placement
	Message       string
	Query         string
	Suggestions   []geoguess.Country
	Asset         geoguess.Asset
}

// Controller is the entry point presentation code calls into. It owns one
// Session and keeps the query, suggestion and asset cells in step with it.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	Query       *reactive.Cell[string]
	Suggestions *reactive.Cell[[]geoguess.Country]
	Asset       *reactive.Cell[geoguess.Asset]

	session *Session
	atlas   *geoguess.Atlas
	assets  AssetSource
	logger  *slog.Logger
	limit   int
}

// NewController wires a session over atlas. assets may be nil, in which
// case rounds carry a code-only asset. A suggestionLimit of zero or less
// uses suggest.DefaultLimit.
func NewController(atlas *geoguess.Atlas, rng Rand, assets AssetSource, logger *slog.Logger, suggestionLimit int) *Controller {
	c := &Controller{
		Query:       reactive.New(""),
		Suggestions: reactive.NewFunc([]geoguess.Country{}, slices.Equal[[]geoguess.Country]),
		Asset:       reactive.New(geoguess.Asset{}),
		session:     NewSession(atlas, rng),
		atlas:       atlas,
		assets:      assets,
		logger:      logger,
		limit:       suggestionLimit,
	}
	c.Query.Subscribe(func(query, _ string) {
		c.Suggestions.Set(suggest.Suggest(query, c.atlas.All(), c.limit))
	})
	return c
}

// Session exposes the underlying state cells for subscription.
func (c *Controller) Session() *Session {
	return c.session
}

// Start begins a new session, replacing any session in progress.
func (c *Controller) Start(ctx context.Context, players, scoreToWin int) error {
	if err := c.session.Start(players, scoreToWin); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	c.Query.Set("")
	c.loadAsset(ctx)

	c.logger.Info("session started", "players", players, "score_to_win", scoreToWin)
	return nil
}

// SetQuery records the text typed so far and returns the suggestions
// ranked for it.
func (c *Controller) SetQuery(query string) []geoguess.Country {
	c.Query.Set(query)
	return c.Suggestions.Get()
}

// Guess submits the country with the given code for the current player.
func (c *Controller) Guess(ctx context.Context, code string) (Outcome, error) {
	if err := c.checkActive(); err != nil {
		return Outcome{}, err
	}
	country, ok := c.atlas.Lookup(code)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return c.guess(ctx, country)
}

// GuessTopSuggestion submits the first suggestion for the current query.
func (c *Controller) GuessTopSuggestion(ctx context.Context) (Outcome, error) {
	if err := c.checkActive(); err != nil {
		return Outcome{}, err
	}
	suggestions := c.Suggestions.Get()
	if len(suggestions) == 0 {
		return Outcome{}, ErrNoSuggestion
	}
	return c.guess(ctx, suggestions[0])
}

func (c *Controller) guess(ctx context.Context, country geoguess.Country) (Outcome, error) {
	if err := c.checkActive(); err != nil {
		return Outcome{}, err
	}
	c.Query.Set("")

	round := c.session.Round.Get()
	out := c.session.SubmitGuess(country)

	c.logger.Debug("guess submitted",
		"player", out.Player,
		"country", country.Code,
		"correct", out.Correct,
		"distance_km", out.Distance,
	)
	if out.Ended {
		c.logger.Info("session ended", "placements", c.session.Placements())
	} else if c.session.Round.Get() != round {
		c.loadAsset(ctx)
	}
	return out, nil
}

// Forfeit gives up the current round.
func (c *Controller) Forfeit(ctx context.Context) error {
	if err := c.checkActive(); err != nil {
		return err
	}
	c.session.Forfeit()
	c.loadAsset(ctx)
	return nil
}

// Abandon discards the session and returns to the no-session phase.
func (c *Controller) Abandon() {
	c.session.Reset()
	c.Query.Set("")
	c.Asset.Set(geoguess.Asset{})
	c.logger.Info("session abandoned")
}

// State snapshots everything presentation renders.
func (c *Controller) State() State {
	s := c.session
	misses := len(s.Guesses.Get())
	return State{
		Phase:         s.Phase(),
		Round:         s.Round.Get(),
		Turn:          s.Turn.Get(),
		Scores:        slices.Clone(s.Scores.Get()),
		ScoreTable:    s.Standings(),
		ScoreToWin:    s.ScoreToWin(),
		Mystery:       s.Mystery.Get(),
		Guesses:       slices.Clone(s.Guesses.Get()),
		PointsOnOffer: Points(misses),
		Progress:      Progress(misses),
		Placements:    s.Placements(),
		Message:       s.Message.Get(),
		Query:         c.Query.Get(),
		Suggestions:   slices.Clone(c.Suggestions.Get()),
		Asset:         c.Asset.Get(),
	}
}

func (c *Controller) checkActive() error {
	switch c.session.Phase() {
	case PhaseNoSession:
		return ErrNoActiveRound
	case PhaseSessionEnded:
		return ErrSessionEnded
	}
	return nil
}

// loadAsset resolves the asset for the current mystery country. Lookup
// failures are logged and leave a code-only asset.
func (c *Controller) loadAsset(ctx context.Context) {
	code := c.session.Mystery.Get().Code
	asset := geoguess.Asset{Code: code}
	if c.assets != nil {
		a, err := c.assets.Asset(ctx, code)
		if err != nil {
			c.logger.Warn("asset lookup failed", "code", code, "error", err)
		} else {
			asset = a
		}
	}
	c.Asset.Set(asset)
}
