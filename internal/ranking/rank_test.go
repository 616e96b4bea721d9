package ranking

import (
	"testing"
	"time"

	"pawprint/internal/tmdb"
)

func TestRankSortsDescendingByScore(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	movies := []tmdb.Movie{
		{ID: 1, VoteAverage: 6.0, VoteCount: 100},
		{ID: 2, VoteAverage: 8.5, VoteCount: 5000},
		{ID: 3, VoteAverage: 7.2, VoteCount: 900},
	}

	ranked := Rank(movies, now)
	if ranked[0].ID != 2 || ranked[1].ID != 3 || ranked[2].ID != 1 {
		t.Fatalf("unexpected order: %v %v %v", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
	// Input untouched.
	if movies[0].ID != 1 {
		t.Fatalf("input slice mutated: %v", movies[0].ID)
	}
}

func TestRankStableOnEqualScores(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a := tmdb.Movie{ID: 10, VoteAverage: 7.0, VoteCount: 100, Popularity: 5}
	b := tmdb.Movie{ID: 20, VoteAverage: 7.0, VoteCount: 100, Popularity: 5}

	ranked := Rank([]tmdb.Movie{a, b}, now)
	if ranked[0].ID != 10 || ranked[1].ID != 20 {
		t.Fatalf("stable sort must preserve input order, got %v %v", ranked[0].ID, ranked[1].ID)
	}
}

func TestScoreMonotonicInEachInput(t *testing.T) {
	year := 2026
	base := tmdb.Movie{VoteAverage: 7, VoteCount: 500, Popularity: 40, ReleaseDate: "2020-01-01"}

	higherRating := base
	higherRating.VoteAverage = 7.5
	if Score(higherRating, year) <= Score(base, year) {
		t.Fatal("score must increase with rating")
	}

	moreVotes := base
	moreVotes.VoteCount = 5000
	if Score(moreVotes, year) <= Score(base, year) {
		t.Fatal("score must increase with vote count")
	}

	morePopular := base
	morePopular.Popularity = 400
	if Score(morePopular, year) <= Score(base, year) {
		t.Fatal("score must increase with popularity")
	}

	newer := base
	newer.ReleaseDate = "2025-01-01"
	if Score(newer, year) <= Score(base, year) {
		t.Fatal("score must increase with recency inside the window")
	}
}

func TestScoreRecencyBoost(t *testing.T) {
	year := 2026

	current := tmdb.Movie{ReleaseDate: "2026-03-01"}
	if got := Score(current, year); got != 0.03 {
		t.Fatalf("current-year movie should score the full boost, got %v", got)
	}

	old := tmdb.Movie{ReleaseDate: "1995-03-01"}
	if got := Score(old, year); got != 0 {
		t.Fatalf("movie outside the window should score zero, got %v", got)
	}

	undated := tmdb.Movie{ReleaseDate: "soon"}
	if got := Score(undated, year); got != 0 {
		t.Fatalf("malformed date should zero the boost, got %v", got)
	}
}

func TestScoreMissingFieldsTreatedAsZero(t *testing.T) {
	if got := Score(tmdb.Movie{}, 2026); got != 0 {
		t.Fatalf("empty movie should score zero, got %v", got)
	}
}
