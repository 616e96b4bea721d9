// Package ranking orders movies by a composite desirability score. The score
// blends rating, review volume, popularity, and a small recency boost; volume
// and popularity are log-scaled so a huge blockbuster cannot drown out a
// well-reviewed smaller film.
package ranking

import (
	"math"
	"sort"
	"time"

	"pawprint/internal/tmdb"
)

// recencyWindowYears is how far back the recency boost reaches. A movie
// released this year scores the full boost; one released at the window's edge
// scores none.
const recencyWindowYears = 15

// Score computes the composite score for one movie. Missing rating, count, or
// popularity contribute zero; a missing or malformed release date zeroes the
// recency boost.
func Score(m tmdb.Movie, currentYear int) float64 {
	recency := 0.0
	if year := m.ReleaseYear(); year > 0 {
		recency = math.Max(0, float64(year-(currentYear-recencyWindowYears))) / recencyWindowYears
	}

	return 0.55*m.VoteAverage +
		0.30*math.Log10(float64(m.VoteCount)+1) +
		0.12*math.Log10(m.Popularity+1) +
		0.03*recency
}

// Rank returns the movies sorted by descending score. The sort is stable:
// equal scores keep their input order. The input slice is not modified.
func Rank(movies []tmdb.Movie, now time.Time) []tmdb.Movie {
	ranked := make([]tmdb.Movie, len(movies))
	copy(ranked, movies)

	currentYear := now.Year()
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], currentYear) > Score(ranked[j], currentYear)
	})
	return ranked
}
