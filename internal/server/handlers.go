package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawprint/internal/dtdd"
	"pawprint/internal/logging"
	"pawprint/internal/search"
	"pawprint/internal/tmdb"
	"pawprint/internal/watched"
)

const castDisplayLimit = 12

type homeView struct {
	Genres []tmdb.Genre
}

type resultsView struct {
	Movies []search.Result
	Note   string
}

type movieView struct {
	Movie     *tmdb.Details
	Cast      []tmdb.CastMember
	Safety    dtdd.Status
	IsWatched bool
}

type watchedView struct {
	Entries []watched.Entry
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	genres, err := s.catalog.GenreList(r.Context())
	if err != nil {
		s.logger.Warn("genre list failed", logging.Error(err))
		// The form still works without genre checkboxes.
		genres = nil
	}
	s.render(w, "search.html", homeView{Genres: genres})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	criteria := search.Criteria{
		YearFrom:      formInt(r, "year_from"),
		YearTo:        formInt(r, "year_to"),
		MinRating:     formFloat(r, "min_rating"),
		GenreIDs:      splitIDs(strings.Join(r.Form["genres"], ",")),
		IncludeActors: splitNames(r.FormValue("include_actors")),
		ExcludeActors: splitNames(r.FormValue("exclude_actors")),
		NoAnimalHarm:  r.FormValue("no_animal_harm") != "",
	}

	out, err := s.searcher.Run(r.Context(), s.userID, criteria)
	if err != nil {
		s.logger.Error("search failed", logging.Error(err))
		http.Error(w, "search failed: upstream unavailable", http.StatusBadGateway)
		return
	}

	s.render(w, "results.html", resultsView{Movies: out.Movies, Note: out.Note})
}

func (s *Server) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || movieID <= 0 {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	details, err := s.catalog.MovieDetails(r.Context(), movieID)
	if err != nil {
		s.logger.Error("movie details failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		http.Error(w, "movie unavailable", http.StatusBadGateway)
		return
	}

	cast, err := s.catalog.MovieCredits(r.Context(), movieID)
	if err != nil {
		s.logger.Warn("credits failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		cast = nil
	}
	if len(cast) > castDisplayLimit {
		cast = cast[:castDisplayLimit]
	}

	imdbID, err := s.catalog.IMDbID(r.Context(), movieID)
	if err != nil {
		s.logger.Warn("imdb id lookup failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		imdbID = ""
	}

	safety, err := s.annotator.Classify(r.Context(), details.Title, movieID, details.ReleaseYear(), imdbID)
	if err != nil {
		s.logger.Warn("safety check failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		safety = dtdd.StatusUnknown
	}

	isWatched, err := s.store.IsWatched(r.Context(), s.userID, movieID)
	if err != nil {
		s.logger.Warn("watched check failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		isWatched = false
	}

	s.render(w, "movie.html", movieView{
		Movie:     details,
		Cast:      cast,
		Safety:    safety,
		IsWatched: isWatched,
	})
}

func (s *Server) handleWatchedList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context(), s.userID)
	if err != nil {
		s.logger.Error("watched list failed", logging.Error(err))
		http.Error(w, "watched list unavailable", http.StatusInternalServerError)
		return
	}
	s.render(w, "watched.html", watchedView{Entries: entries})
}

func (s *Server) handleWatchedMark(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	movieID := int64(formInt(r, "tmdb_id"))
	if movieID <= 0 {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	if err := s.store.Mark(r.Context(), s.userID, movieID, strings.TrimSpace(r.FormValue("title"))); err != nil {
		s.logger.Error("mark watched failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		http.Error(w, "could not mark watched", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/watched", http.StatusSeeOther)
}

func (s *Server) handleWatchedRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	movieID := int64(formInt(r, "tmdb_id"))
	if movieID <= 0 {
		http.Error(w, "invalid movie id", http.StatusBadRequest)
		return
	}

	if err := s.store.Unmark(r.Context(), s.userID, movieID); err != nil {
		s.logger.Error("unmark watched failed",
			logging.Int64(logging.FieldMovieID, movieID), logging.Error(err))
		http.Error(w, "could not remove watched entry", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/watched", http.StatusSeeOther)
}

func formInt(r *http.Request, field string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.FormValue(field)))
	if err != nil {
		return 0
	}
	return value
}

func formFloat(r *http.Request, field string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(field)), 64)
	if err != nil {
		return 0
	}
	return value
}

// splitNames breaks a comma-separated list into trimmed, non-empty names.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// splitIDs parses a comma-separated id list, skipping anything non-numeric.
func splitIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
