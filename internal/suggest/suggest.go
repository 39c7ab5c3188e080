// Package suggest ranks countries against a partially typed name.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/playperu/geoguess/internal/geoguess"
)

// DefaultLimit is the number of suggestions offered when no limit is given.
const DefaultLimit = 5

// maxEditRatio is the exclusive upper bound on edits per query rune for a
// candidate to be kept.
const maxEditRatio = 0.5

// Suggest returns up to limit countries whose name prefix is closest to
// query by edit distance. The prefix is the name truncated to the query's
// length in runes, or the whole name when the query is longer. Ties keep
// the order of countries. A candidate is kept only when it needs fewer
// than half a query-length of edits, so an empty query matches nothing.
//
// A limit of zero or less means DefaultLimit. The result is never nil.
func Suggest(query string, countries []geoguess.Country, limit int) []geoguess.Country {
	if limit <= 0 {
		limit = DefaultLimit
	}
	n := utf8.RuneCountInString(query)
	if n == 0 {
		return []geoguess.Country{}
	}
	q := strings.ToLower(query)

	type candidate struct {
		country  geoguess.Country
		distance int
	}
	ranked := make([]candidate, len(countries))
	for i, c := range countries {
		ranked[i] = candidate{
			country:  c,
			distance: Levenshtein(q, strings.ToLower(prefix(c.Name, n))),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	out := make([]geoguess.Country, 0, min(limit, len(ranked)))
	for _, c := range ranked[:min(limit, len(ranked))] {
		if float64(c.distance)/float64(n) >= maxEditRatio {
			// Sorted ascending: nothing after this passes either.
			break
		}
		out = append(out, c.country)
	}
	return out
}

// prefix returns the first n runes of s, or s itself when it is shorter.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
