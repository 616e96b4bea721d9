package search

// attempt is one rung of the fallback ladder: the filter strictness to try
// and the note shown to the user when the pipeline had to relax this far.
type attempt struct {
	minRating    float64
	minVoteCount int
	note         string
}

// buildLadder returns the attempts to run in order. The first rung applies the
// user's rating bar against well-reviewed movies only; later rungs admit
// thinner review counts, and a very high rating bar earns two bonus rungs that
// lower the bar itself.
func buildLadder(minRating float64) []attempt {
	attempts := []attempt{
		{minRating: minRating, minVoteCount: 200},
		{minRating: minRating, minVoteCount: 100, note: "lowered minimum review count to 100"},
		{minRating: minRating, minVoteCount: 50, note: "lowered minimum review count to 50"},
	}
	if minRating >= 8.5 {
		attempts = append(attempts,
			attempt{minRating: 8.0, minVoteCount: 100, note: "lowered minimum rating to 8.0"},
			attempt{minRating: 7.5, minVoteCount: 100, note: "lowered minimum rating to 7.5"},
		)
	}
	return attempts
}

// pageBudget returns how many discover pages each attempt may pull. Demanding
// rating bars get a deeper page budget because matching movies are sparse.
func pageBudget(minRating float64) int {
	if minRating >= 8.0 {
		return 10
	}
	return 5
}
