package dtdd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pawprint/internal/logging"
	"pawprint/internal/metrics"
	"pawprint/internal/services"
	"pawprint/internal/ttlcache"
)

// Client calls the doesthedogdie.com API with TTL-cached payloads.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *ttlcache.Cache
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a DTDD client. An empty apiKey is allowed: the client stays
// usable and every classification resolves to unknown.
func New(apiKey, baseURL string, cache *ttlcache.Cache, logger *slog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%w: dtdd base url required", services.ErrConfiguration)
	}
	if cache == nil {
		cache = ttlcache.New(7 * 24 * time.Hour)
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
		logger:     logging.NewComponentLogger(logger, "dtdd"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse dtdd url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("dtdd").Inc()
		return fmt.Errorf("%w: dtdd %s (latency=%v): %w", services.ErrUpstream, path, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("dtdd").Inc()
		return fmt.Errorf("%w: dtdd %s returned %d (latency=%v)", services.ErrUpstream, path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode dtdd response: %w", err)
	}
	return nil
}

// search looks a title up on /dddsearch, keyed in the cache by the normalized
// query.
func (c *Client) search(ctx context.Context, query string) (*SearchResponse, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", key)
	return c.cachedSearch(ctx, key, params)
}

// searchIMDb looks a movie up on /dddsearch by IMDb id, keyed in the cache by
// "imdb:<id>" lowercased.
func (c *Client) searchIMDb(ctx context.Context, imdbID string) (*SearchResponse, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, nil
	}
	key := "imdb:" + strings.ToLower(imdbID)

	params := url.Values{}
	params.Set("imdb", imdbID)
	return c.cachedSearch(ctx, key, params)
}

func (c *Client) cachedSearch(ctx context.Context, key string, params url.Values) (*SearchResponse, error) {
	if cached, ok := c.cache.Get(key); ok {
		if payload, ok := cached.(*SearchResponse); ok {
			metrics.AnnotatorCache.WithLabelValues("hit").Inc()
			return payload, nil
		}
	}
	metrics.AnnotatorCache.WithLabelValues("miss").Inc()

	var payload SearchResponse
	if err := c.getJSON(ctx, "/dddsearch", params, &payload); err != nil {
		return nil, err
	}
	c.cache.Set(key, &payload)
	return &payload, nil
}

// media fetches a media item's detail payload, cached by item id.
func (c *Client) media(ctx context.Context, itemID int64) (*MediaResponse, error) {
	key := fmt.Sprintf("media:%d", itemID)
	if cached, ok := c.cache.Get(key); ok {
		if payload, ok := cached.(*MediaResponse); ok {
			metrics.AnnotatorCache.WithLabelValues("hit").Inc()
			return payload, nil
		}
	}
	metrics.AnnotatorCache.WithLabelValues("miss").Inc()

	var payload MediaResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/media/%d", itemID), nil, &payload); err != nil {
		return nil, err
	}
	c.cache.Set(key, &payload)
	return &payload, nil
}
