// Package countries loads the country dataset the game draws from.
//
// A small dataset is embedded so the server runs without configuration; a
// JSON file with the same shape can replace it. The dataset is kept in the
// SQLite catalog (see Store) and read from there into a geoguess.Atlas once
// at startup.
package countries

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/playperu/geoguess/internal/geoguess"
)

//go:embed countries.json
var embedded []byte

var ErrEmptyDataset = errors.New("country dataset is empty")

// Embedded returns the built-in dataset in data order.
func Embedded() ([]geoguess.Country, error) {
	return Parse(embedded)
}

// LoadFile reads a dataset from a JSON file.
func LoadFile(path string) ([]geoguess.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cs, nil
}

// Parse decodes a dataset. Both a JSON array of countries and an object
// keyed by country code are accepted; object entries are returned ordered
// by code.
func Parse(data []byte) ([]geoguess.Country, error) {
	var list []geoguess.Country
	if err := json.Unmarshal(data, &list); err != nil {
		var byCode map[string]geoguess.Country
		if err2 := json.Unmarshal(data, &byCode); err2 != nil {
			return nil, fmt.Errorf("decoding countries: %w", err)
		}
		list = fromMap(byCode)
	}
	if len(list) == 0 {
		return nil, ErrEmptyDataset
	}
	if _, err := geoguess.NewAtlas(list); err != nil {
		return nil, err
	}
	return list, nil
}

func fromMap(byCode map[string]geoguess.Country) []geoguess.Country {
	list := make([]geoguess.Country, 0, len(byCode))
	for code, c := range byCode {
		if c.Code == "" {
			c.Code = code
		}
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b geoguess.Country) int {
		return strings.Compare(a.Code, b.Code)
	})
	return list
}
