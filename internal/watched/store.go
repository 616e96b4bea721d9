package watched

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one watched record.
type Entry struct {
	ID        int64
	UserID    int64
	TMDBID    int64
	Title     string
	CreatedAt time.Time
}

// Store manages watched-set persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the watched database and verifies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// List returns all watched entries for a user, most recent first.
func (s *Store) List(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, tmdb_id, title, created_at
         FROM watched_movies WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watched: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.TMDBID, &entry.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan watched row: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched rows: %w", err)
	}
	return entries, nil
}

// IDs returns the snapshot set of watched TMDB ids for a user.
func (s *Store) IDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tmdb_id FROM watched_movies WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("snapshot watched ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan watched id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched ids: %w", err)
	}
	return ids, nil
}

// IsWatched reports whether a user has marked the given movie.
func (s *Store) IsWatched(ctx context.Context, userID, tmdbID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM watched_movies WHERE user_id = ? AND tmdb_id = ? LIMIT 1",
		userID, tmdbID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check watched: %w", err)
	}
	return true, nil
}

// Mark records a movie as watched. Marking an already-watched movie is a
// no-op; at most one entry exists per (user, movie) pair.
func (s *Store) Mark(ctx context.Context, userID, tmdbID int64, title string) error {
	exists, err := s.IsWatched(ctx, userID, tmdbID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO watched_movies (user_id, tmdb_id, title, created_at) VALUES (?, ?, ?, ?)",
		userID, tmdbID, title, now)
	if err != nil {
		return fmt.Errorf("insert watched: %w", err)
	}
	return nil
}

// Unmark removes a movie from the watched set. Removing a never-marked movie
// is a no-op, not an error.
func (s *Store) Unmark(ctx context.Context, userID, tmdbID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM watched_movies WHERE user_id = ? AND tmdb_id = ?",
		userID, tmdbID)
	if err != nil {
		return fmt.Errorf("delete watched: %w", err)
	}
	return nil
}
