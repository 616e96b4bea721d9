// Package server exposes the web UI: a search form over the result-assembly
// pipeline, movie detail pages, and the watched list. Routing uses chi;
// handlers render embedded html/template views.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawprint/internal/dtdd"
	"pawprint/internal/logging"
	"pawprint/internal/search"
	"pawprint/internal/tmdb"
	"pawprint/internal/watched"
)

// Catalog is the slice of the TMDB client the handlers use directly.
type Catalog interface {
	GenreList(ctx context.Context) ([]tmdb.Genre, error)
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.Details, error)
	MovieCredits(ctx context.Context, movieID int64) ([]tmdb.CastMember, error)
	IMDbID(ctx context.Context, movieID int64) (string, error)
}

// Annotator classifies a movie for the dog-death topic.
type Annotator interface {
	Classify(ctx context.Context, title string, tmdbID int64, year int, imdbID string) (dtdd.Status, error)
}

// WatchedStore is the slice of the watched store the handlers use.
type WatchedStore interface {
	List(ctx context.Context, userID int64) ([]watched.Entry, error)
	IsWatched(ctx context.Context, userID, tmdbID int64) (bool, error)
	Mark(ctx context.Context, userID, tmdbID int64, title string) error
	Unmark(ctx context.Context, userID, tmdbID int64) error
}

// Searcher runs the result-assembly pipeline.
type Searcher interface {
	Run(ctx context.Context, userID int64, criteria search.Criteria) (*search.Output, error)
}

// Server holds the handler dependencies.
type Server struct {
	catalog   Catalog
	annotator Annotator
	store     WatchedStore
	searcher  Searcher
	logger    *slog.Logger
	userID    int64
}

// New creates a Server. userID identifies the single configured user all
// watched mutations are written under.
func New(catalog Catalog, annotator Annotator, store WatchedStore, searcher Searcher, logger *slog.Logger, userID int64) *Server {
	return &Server{
		catalog:   catalog,
		annotator: annotator,
		store:     store,
		searcher:  searcher,
		logger:    logging.NewComponentLogger(logger, "server"),
		userID:    userID,
	}
}

// Router assembles the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Post("/search", s.handleSearch)
	r.Get("/movie/{id}", s.handleMovieDetail)

	r.Route("/watched", func(r chi.Router) {
		r.Get("/", s.handleWatchedList)
		r.Post("/", s.handleWatchedMark)
		r.Post("/remove", s.handleWatchedRemove)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
