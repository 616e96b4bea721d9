package dtdd_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pawprint/internal/dtdd"
	"pawprint/internal/logging"
	"pawprint/internal/services"
	"pawprint/internal/ttlcache"
)

// newFakeDTDD serves /dddsearch and /media/{id} with canned payloads and
// counts calls.
func newFakeDTDD(t *testing.T, searchBody, mediaBody string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if r.Header.Get("X-API-KEY") != "dtdd-key" {
			t.Fatalf("expected api key header, got %q", r.Header.Get("X-API-KEY"))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/dddsearch" {
			fmt.Fprint(w, searchBody)
			return
		}
		fmt.Fprint(w, mediaBody)
	}))
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, baseURL string, cache *ttlcache.Cache) *dtdd.Client {
	t.Helper()
	client, err := dtdd.New("dtdd-key", baseURL, cache, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestClassifyIntegerIsYesIsUnsafe(t *testing.T) {
	search := `{"items":[{"id":7,"name":"Example","tmdbId":42,"releaseYear":1999}]}`
	media := `{"topicItemStats":[{"topic":{"legacyId":25,"name":"a dog dies"},"isYes":1}]}`
	server := newFakeDTDD(t, search, media, nil)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "Example", 42, 1999, "")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if status != dtdd.StatusUnsafe {
		t.Fatalf("expected unsafe, got %q", status)
	}
}

func TestClassifyNoVotesMajorityIsSafe(t *testing.T) {
	search := `{"items":[{"id":7,"tmdbId":42}]}`
	media := `{"topicItemStats":[{"topic":{"legacyId":25},"yesSum":2,"noSum":9}]}`
	server := newFakeDTDD(t, search, media, nil)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "Example", 42, 0, "")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if status != dtdd.StatusSafe {
		t.Fatalf("expected safe, got %q", status)
	}
}

func TestClassifyEmptyTitleSkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	server := newFakeDTDD(t, `{}`, `{}`, &calls)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "   ", 1, 0, "")
	if err != nil || status != dtdd.StatusUnknown {
		t.Fatalf("expected unknown without error, got %q (%v)", status, err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestClassifyWithoutAPIKeyIsUnknown(t *testing.T) {
	client, err := dtdd.New("", "https://example.com", nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	status, err := client.Classify(context.Background(), "Example", 1, 0, "")
	if err != nil || status != dtdd.StatusUnknown {
		t.Fatalf("expected unknown without error, got %q (%v)", status, err)
	}
}

func TestClassifyEmptySearchResultIsUnknown(t *testing.T) {
	server := newFakeDTDD(t, `{"items":[]}`, `{}`, nil)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "Obscure", 1, 0, "")
	if err != nil || status != dtdd.StatusUnknown {
		t.Fatalf("expected unknown without error, got %q (%v)", status, err)
	}
}

func TestClassifyUpstreamFailureReturnsUnknownWithError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "Example", 1, 0, "")
	if status != dtdd.StatusUnknown {
		t.Fatalf("expected unknown on failure, got %q", status)
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestClassifyUsesIMDbSearchWhenAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/dddsearch" {
			if r.URL.Query().Get("imdb") != "tt0137523" {
				t.Fatalf("expected imdb query, got %q", r.URL.RawQuery)
			}
			fmt.Fprint(w, `{"items":[{"id":7,"tmdbId":550}]}`)
			return
		}
		fmt.Fprint(w, `{"topicItemStats":[{"topic":{"legacyId":25},"isYes":false}]}`)
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL, nil)
	status, err := client.Classify(context.Background(), "Fight Club", 550, 1999, "tt0137523")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if status != dtdd.StatusSafe {
		t.Fatalf("expected safe, got %q", status)
	}
}

func TestClassifyCachesSearchAndMediaPayloads(t *testing.T) {
	var calls atomic.Int64
	search := `{"items":[{"id":7,"tmdbId":42}]}`
	media := `{"topicItemStats":[{"topic":{"legacyId":25},"isYes":true}]}`
	server := newFakeDTDD(t, search, media, &calls)

	client := newClient(t, server.URL, ttlcache.New(time.Hour))

	for i := 0; i < 3; i++ {
		status, err := client.Classify(context.Background(), "Example", 42, 0, "")
		if err != nil || status != dtdd.StatusUnsafe {
			t.Fatalf("classify %d: got %q (%v)", i, status, err)
		}
	}
	// One search plus one media fetch; repeats served from cache.
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls.Load())
	}
}

func TestClassifyRefetchesAfterTTL(t *testing.T) {
	var calls atomic.Int64
	search := `{"items":[{"id":7,"tmdbId":42}]}`
	media := `{"topicItemStats":[{"topic":{"legacyId":25},"isYes":true}]}`
	server := newFakeDTDD(t, search, media, &calls)

	now := time.Unix(1_700_000_000, 0)
	cache := ttlcache.New(7*24*time.Hour, ttlcache.WithClock(func() time.Time { return now }))
	client := newClient(t, server.URL, cache)

	if _, err := client.Classify(context.Background(), "Example", 42, 0, ""); err != nil {
		t.Fatalf("first classify: %v", err)
	}
	now = now.Add(8 * 24 * time.Hour)
	if _, err := client.Classify(context.Background(), "Example", 42, 0, ""); err != nil {
		t.Fatalf("second classify: %v", err)
	}
	if calls.Load() != 4 {
		t.Fatalf("expected stale entries to refetch (4 calls), got %d", calls.Load())
	}
}
