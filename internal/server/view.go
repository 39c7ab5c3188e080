package server

import (
	"github.com/playperu/geoguess/internal/game"
	"github.com/playperu/geoguess/internal/geoguess"
)

// StateResponse is the client view of a session. The mystery country is
// never included.
type StateResponse struct {
	Phase         string               `json:"phase"`
	Round         int                  `json:"round"`
	Player        int                  `json:"player"`
	Scores        []int                `json:"scores"`
	ScoreTable    []geoguess.Placement `json:"scoreTable"`
	ScoreToWin    int                  `json:"scoreToWin"`
	Guesses       []GuessRow           `json:"guesses"`
	PointsOnOffer int                  `json:"pointsOnOffer"`
	Progress      float64              `json:"progress"`
	Placements    []geoguess.Placement `json:"placements,omitempty"`
	Message       string               `json:"message"`
	Query         string               `json:"query"`
	Suggestions   []CountryItem        `json:"suggestions"`
	Asset         *geoguess.Asset      `json:"asset,omitempty"`
}

// GuessRow is one line of the round's guess table.
type GuessRow struct {
	Number    int     `json:"number"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	Bearing   int     `json:"bearing"`
	Direction string  `json:"direction"`
}

type CountryItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func newStateResponse(st game.State) StateResponse {
	resp := StateResponse{
		Phase:         st.Phase.String(),
		Round:         st.Round,
		Scores:        st.Scores,
		ScoreTable:    st.ScoreTable,
		ScoreToWin:    st.ScoreToWin,
		Guesses:       guessRows(st.Guesses),
		PointsOnOffer: st.PointsOnOffer,
		Progress:      st.Progress,
		Placements:    st.Placements,
		Message:       st.Message,
		Query:         st.Query,
		Suggestions:   countryItems(st.Suggestions),
	}
	if resp.Scores == nil {
		resp.Scores = []int{}
	}
	if resp.ScoreTable == nil {
		resp.ScoreTable = []geoguess.Placement{}
	}
	if st.Phase == game.PhaseRoundActive {
		resp.Player = st.Turn + 1
	}
	if st.Asset.Code != "" {
		asset := st.Asset
		resp.Asset = &asset
	}
	return resp
}

func guessRows(guesses []geoguess.IncorrectGuess) []GuessRow {
	rows := make([]GuessRow, len(guesses))
	for i, g := range guesses {
		rows[i] = GuessRow{
			Number:    i + 1,
			Code:      g.Country.Code,
			Name:      g.Country.Name,
			Distance:  g.Distance,
			Bearing:   g.Bearing,
			Direction: g.Direction,
		}
	}
	return rows
}

func countryItems(countries []geoguess.Country) []CountryItem {
	items := make([]CountryItem, len(countries))
	for i, c := range countries {
		items[i] = CountryItem{Code: c.Code, Name: c.Name}
	}
	return items
}
