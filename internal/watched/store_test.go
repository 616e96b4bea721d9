package watched_test

import (
	"context"
	"path/filepath"
	"testing"

	"pawprint/internal/watched"
)

func newStore(t *testing.T) *watched.Store {
	t.Helper()
	store, err := watched.Open(filepath.Join(t.TempDir(), "watched.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMarkIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Mark(ctx, 1, 550, "Fight Club"); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := store.Mark(ctx, 1, 550, "Fight Club"); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	entries, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry after double mark, got %d", len(entries))
	}
	if entries[0].TMDBID != 550 || entries[0].Title != "Fight Club" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestUnmarkNeverMarkedIsNoop(t *testing.T) {
	store := newStore(t)
	if err := store.Unmark(context.Background(), 1, 999); err != nil {
		t.Fatalf("unmark of absent entry must not error: %v", err)
	}
}

func TestMarkUnmarkRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Mark(ctx, 1, 603, "The Matrix"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	ok, err := store.IsWatched(ctx, 1, 603)
	if err != nil || !ok {
		t.Fatalf("expected watched, got %v (%v)", ok, err)
	}

	if err := store.Unmark(ctx, 1, 603); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	ok, err = store.IsWatched(ctx, 1, 603)
	if err != nil || ok {
		t.Fatalf("expected not watched after unmark, got %v (%v)", ok, err)
	}
}

func TestIDsSnapshotIsPerUser(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := store.Mark(ctx, 1, id, "movie"); err != nil {
			t.Fatalf("mark %d: %v", id, err)
		}
	}
	if err := store.Mark(ctx, 2, 99, "other user"); err != nil {
		t.Fatalf("mark other user: %v", err)
	}

	ids, err := store.IDs(ctx, 1)
	if err != nil {
		t.Fatalf("IDs returned error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids for user 1, got %d", len(ids))
	}
	if _, leaked := ids[99]; leaked {
		t.Fatal("user 2 entry leaked into user 1 snapshot")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.db")

	store, err := watched.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Mark(context.Background(), 1, 42, "persisted"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := watched.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	ok, err := reopened.IsWatched(context.Background(), 1, 42)
	if err != nil || !ok {
		t.Fatalf("expected entry to survive reopen, got %v (%v)", ok, err)
	}
}
