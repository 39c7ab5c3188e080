// Package geoguess defines the core domain types shared by the engine,
// the data sources and the presentation layer. It has zero external
// dependencies.
package geoguess

import (
	"fmt"
	"strings"
)

// Country is one entry of the country dataset. Values are immutable once
// loaded.
type Country struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IncorrectGuess records a wrong guess made during the current round.
type IncorrectGuess struct {
	Country   Country `json:"country"`
	Distance  float64 `json:"distance"`
	Bearing   int     `json:"bearing"`
	Direction string  `json:"direction"`
}

// Placement is a player's rank entry. Player numbers are 1-based.
type Placement struct {
	Player int `json:"player"`
	Score  int `json:"score"`
}

// Asset points at the visuals shown for a round's mystery country.
type Asset struct {
	Code          string `json:"code"`
	SilhouetteURL string `json:"silhouetteUrl,omitempty"`
	FlagURL       string `json:"flagUrl,omitempty"`
}

// Atlas is the read-only country set keyed by code. It keeps the order the
// countries were loaded in, which the suggestion engine uses for tie-breaks.
type Atlas struct {
	countries []Country
	byCode    map[string]int
}

// NewAtlas builds an atlas from countries in data order. Codes are
// normalized to upper case and must be unique.
func NewAtlas(countries []Country) (*Atlas, error) {
	a := &Atlas{
		countries: make([]Country, 0, len(countries)),
		byCode:    make(map[string]int, len(countries)),
	}
	for _, c := range countries {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if c.Code == "" || c.Name == "" {
			return nil, fmt.Errorf("country %q: code and name are required", c.Name)
		}
		if _, dup := a.byCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate country code %q", c.Code)
		}
		a.byCode[c.Code] = len(a.countries)
		a.countries = append(a.countries, c)
	}
	return a, nil
}

// Len reports the number of countries.
func (a *Atlas) Len() int { return len(a.countries) }

// All returns the countries in data order. Callers must not modify it.
func (a *Atlas) All() []Country { return a.countries }

// At returns the i-th country in data order.
func (a *Atlas) At(i int) Country { return a.countries[i] }

// Lookup finds a country by code, case-insensitively.
func (a *Atlas) Lookup(code string) (Country, bool) {
	i, ok := a.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return a.countries[i], true
}
