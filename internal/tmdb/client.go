package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pawprint/internal/metrics"
	"pawprint/internal/services"
)

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
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

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: tmdb api key required", services.ErrConfiguration)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%w: tmdb base url required", services.ErrConfiguration)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// getJSON issues an authenticated GET against path and decodes the response
// body into out. Non-200 responses and transport failures surface as upstream
// errors.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("tmdb").Inc()
		return fmt.Errorf("%w: tmdb %s (latency=%v): %w", services.ErrUpstream, path, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("tmdb").Inc()
		return fmt.Errorf("%w: tmdb %s returned %d (latency=%v)", services.ErrUpstream, path, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// MovieDetails fetches movie details by TMDB id.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Details
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieCredits fetches the credited cast for a movie, in billing order.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) ([]CastMember, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload struct {
		Cast []CastMember `json:"cast"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Cast, nil
}

// MovieCastIDs returns the set of person ids credited in a movie's cast.
func (c *Client) MovieCastIDs(ctx context.Context, movieID int64) (map[int64]struct{}, error) {
	cast, err := c.MovieCredits(ctx, movieID)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(cast))
	for _, member := range cast {
		if member.ID > 0 {
			ids[member.ID] = struct{}{}
		}
	}
	return ids, nil
}

// IMDbID resolves a movie's IMDb identifier. The empty string means TMDB has
// no mapping; that is not an error.
func (c *Client) IMDbID(ctx context.Context, movieID int64) (string, error) {
	if movieID <= 0 {
		return "", errors.New("movie id must be positive")
	}
	var payload struct {
		IMDbID string `json:"imdb_id"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/external_ids", movieID), nil, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.IMDbID), nil
}

// SearchPersonID returns the best-match TMDB person id for a name, taking the
// first search hit. Zero means no match; blank names resolve to zero without a
// network call.
func (c *Client) SearchPersonID(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	params := url.Values{}
	params.Set("query", name)
	params.Set("include_adult", "false")

	var payload struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/search/person", params, &payload); err != nil {
		return 0, err
	}
	if len(payload.Results) == 0 {
		return 0, nil
	}
	return payload.Results[0].ID, nil
}

// GenreList fetches the movie genre list for the filter form.
func (c *Client) GenreList(ctx context.Context) ([]Genre, error) {
	var payload struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}
