package search

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"pawprint/internal/dtdd"
	"pawprint/internal/logging"
	"pawprint/internal/metrics"
	"pawprint/internal/ranking"
	"pawprint/internal/tmdb"
)

// Catalog is the slice of the TMDB client the pipeline needs.
type Catalog interface {
	DiscoverMulti(ctx context.Context, filters tmdb.DiscoverFilters, pages int) ([]tmdb.Movie, error)
	MovieCastIDs(ctx context.Context, movieID int64) (map[int64]struct{}, error)
	IMDbID(ctx context.Context, movieID int64) (string, error)
	SearchPersonID(ctx context.Context, name string) (int64, error)
}

// Annotator classifies a movie for the dog-death topic.
type Annotator interface {
	Classify(ctx context.Context, title string, tmdbID int64, year int, imdbID string) (dtdd.Status, error)
}

// WatchedSet supplies the per-user snapshot of already-watched movie ids.
type WatchedSet interface {
	IDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
}

// Criteria is the user's filter input.
type Criteria struct {
	YearFrom      int
	YearTo        int
	MinRating     float64
	GenreIDs      []int64
	IncludeActors []string
	ExcludeActors []string
	NoAnimalHarm  bool
}

// Result is one movie in the final ordered list.
type Result struct {
	tmdb.Movie
	Safety dtdd.Status
}

// Output is the ordered result list plus the explanation of any filter
// relaxation the ladder had to apply. Note is empty when the strictest
// attempt already met the target.
type Output struct {
	Movies []Result
	Note   string
}

// Orchestrator wires the pipeline's collaborators together.
type Orchestrator struct {
	catalog          Catalog
	annotator        Annotator
	watched          WatchedSet
	logger           *slog.Logger
	targetResults    int
	annotationBudget int
	now              func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTargetResults overrides how many post-watched-filter results stop the
// ladder.
func WithTargetResults(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.targetResults = n
		}
	}
}

// WithAnnotationBudget overrides how many movies receive a safety check.
func WithAnnotationBudget(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.annotationBudget = n
		}
	}
}

// WithClock overrides the time source used for ranking recency.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.now = clock
		}
	}
}

// New creates an Orchestrator with the standard defaults: target 20 results,
// annotation budget 25.
func New(catalog Catalog, annotator Annotator, watched WatchedSet, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:          catalog,
		annotator:        annotator,
		watched:          watched,
		logger:           logging.NewComponentLogger(logger, "search"),
		targetResults:    20,
		annotationBudget: 25,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the full pipeline for one search request.
func (o *Orchestrator) Run(ctx context.Context, userID int64, criteria Criteria) (*Output, error) {
	metrics.SearchRequests.Inc()

	includeIDs := o.resolveActorIDs(ctx, criteria.IncludeActors)
	excludeIDs := o.resolveActorIDs(ctx, criteria.ExcludeActors)

	watchedIDs, err := o.watched.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	movies, note, err := o.runLadder(ctx, criteria, includeIDs, watchedIDs)
	if err != nil {
		return nil, err
	}

	movies, safety := o.annotate(ctx, movies, criteria.NoAnimalHarm)

	if len(excludeIDs) > 0 {
		movies = o.excludeByCast(ctx, movies, excludeIDs)
	}

	ranked := ranking.Rank(movies, o.now())

	results := make([]Result, 0, len(ranked))
	for _, movie := range ranked {
		status, ok := safety[movie.ID]
		if !ok {
			status = dtdd.StatusUnknown
		}
		results = append(results, Result{Movie: movie, Safety: status})
	}
	return &Output{Movies: results, Note: note}, nil
}

// resolveActorIDs maps actor names to TMDB person ids. The failure policy is
// drop: a name that resolves to nothing, or whose lookup fails, silently
// leaves the list rather than failing the search.
func (o *Orchestrator) resolveActorIDs(ctx context.Context, names []string) []int64 {
	var ids []int64
	for _, name := range names {
		id, err := o.catalog.SearchPersonID(ctx, name)
		if err != nil {
			o.logger.Warn("person lookup failed, dropping name",
				logging.String("actor", name), logging.Error(err))
			continue
		}
		if id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// runLadder walks the fallback attempts until one yields targetResults movies
// after the watched filter, returning the survivors of the last attempt
// executed together with its note. A discover failure propagates: it is the
// pipeline's primary call.
func (o *Orchestrator) runLadder(ctx context.Context, criteria Criteria, includeIDs []int64, watchedIDs map[int64]struct{}) ([]tmdb.Movie, string, error) {
	ladder := buildLadder(criteria.MinRating)
	pages := pageBudget(criteria.MinRating)

	var (
		movies []tmdb.Movie
		note   string
	)
	for rung, att := range ladder {
		metrics.LadderAttempts.WithLabelValues(strconv.Itoa(rung + 1)).Inc()

		filters := tmdb.DiscoverFilters{
			YearFrom:     criteria.YearFrom,
			YearTo:       criteria.YearTo,
			MinRating:    att.minRating,
			MinVoteCount: att.minVoteCount,
			GenreIDs:     criteria.GenreIDs,
			CastIDs:      includeIDs,
		}

		found, err := o.catalog.DiscoverMulti(ctx, filters, pages)
		if err != nil {
			return nil, "", err
		}

		movies = removeWatched(found, watchedIDs)
		note = att.note

		o.logger.Debug("ladder attempt",
			logging.Int("rung", rung+1),
			logging.Float64("min_rating", att.minRating),
			logging.Int("min_vote_count", att.minVoteCount),
			logging.Int("results", len(movies)))

		if len(movies) >= o.targetResults {
			break
		}
	}
	return movies, note, nil
}

func removeWatched(movies []tmdb.Movie, watchedIDs map[int64]struct{}) []tmdb.Movie {
	if len(watchedIDs) == 0 {
		return movies
	}
	kept := movies[:0:0]
	for _, movie := range movies {
		if _, watched := watchedIDs[movie.ID]; watched {
			continue
		}
		kept = append(kept, movie)
	}
	return kept
}

// annotate runs the safety check over the first annotationBudget movies and,
// when dropUnsafe is set, filters known-unsafe movies out of that checked
// prefix. Movies beyond the budget keep no safety entry (they render as
// unknown) and are never dropped: they were not inspected, so they are not
// judged. Annotator failures downgrade to unknown and keep the movie.
func (o *Orchestrator) annotate(ctx context.Context, movies []tmdb.Movie, dropUnsafe bool) ([]tmdb.Movie, map[int64]dtdd.Status) {
	safety := make(map[int64]dtdd.Status, len(movies))

	bound := o.annotationBudget
	if bound > len(movies) {
		bound = len(movies)
	}

	checked := make([]tmdb.Movie, 0, bound)
	for _, movie := range movies[:bound] {
		imdbID := ""
		if movie.ID > 0 {
			id, err := o.catalog.IMDbID(ctx, movie.ID)
			if err != nil {
				o.logger.Warn("imdb id lookup failed",
					logging.Int64(logging.FieldMovieID, movie.ID), logging.Error(err))
			} else {
				imdbID = id
			}
		}

		status, err := o.annotator.Classify(ctx, movie.Title, movie.ID, movie.ReleaseYear(), imdbID)
		if err != nil {
			o.logger.Warn("safety check failed, treating as unknown",
				logging.Int64(logging.FieldMovieID, movie.ID), logging.Error(err))
			status = dtdd.StatusUnknown
		}
		safety[movie.ID] = status

		if dropUnsafe && status == dtdd.StatusUnsafe {
			continue
		}
		checked = append(checked, movie)
	}

	return append(checked, movies[bound:]...), safety
}

// excludeByCast drops movies whose cast intersects the excluded person ids.
// The failure policy is keep: if the credits lookup for a movie fails, the
// movie stays in the results.
func (o *Orchestrator) excludeByCast(ctx context.Context, movies []tmdb.Movie, excludeIDs []int64) []tmdb.Movie {
	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	kept := make([]tmdb.Movie, 0, len(movies))
	for _, movie := range movies {
		if movie.ID <= 0 {
			continue
		}
		castIDs, err := o.catalog.MovieCastIDs(ctx, movie.ID)
		if err != nil {
			o.logger.Warn("credits lookup failed, keeping movie",
				logging.Int64(logging.FieldMovieID, movie.ID), logging.Error(err))
			kept = append(kept, movie)
			continue
		}
		if intersects(castIDs, excluded) {
			continue
		}
		kept = append(kept, movie)
	}
	return kept
}

func intersects(a, b map[int64]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for id := range a {
		if _, found := b[id]; found {
			return true
		}
	}
	return false
}
