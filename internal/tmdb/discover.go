package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxDiscoverPages bounds how many pages a single DiscoverMulti call may pull
// from TMDB regardless of what the caller asks for.
const maxDiscoverPages = 20

// DiscoverFilters holds the filter criteria for a discover query. Zero values
// mean "unset" and are omitted from the request.
type DiscoverFilters struct {
	YearFrom     int
	YearTo       int
	MinRating    float64
	MinVoteCount int
	GenreIDs     []int64
	CastIDs      []int64
	SortBy       string
}

func (f DiscoverFilters) params(page int) url.Values {
	params := url.Values{}
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("page", strconv.Itoa(page))

	sortBy := strings.TrimSpace(f.SortBy)
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)

	if f.YearFrom > 0 {
		params.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", f.YearFrom))
	}
	if f.YearTo > 0 {
		params.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", f.YearTo))
	}
	if f.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(f.MinVoteCount))
	}
	if len(f.GenreIDs) > 0 {
		params.Set("with_genres", joinIDs(f.GenreIDs))
	}
	if len(f.CastIDs) > 0 {
		params.Set("with_cast", joinIDs(f.CastIDs))
	}
	return params
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// DiscoverPage fetches a single page of filtered discover results.
func (c *Client) DiscoverPage(ctx context.Context, filters DiscoverFilters, page int) (*DiscoverResponse, error) {
	if page < 1 {
		page = 1
	}
	var payload DiscoverResponse
	if err := c.getJSON(ctx, "/discover/movie", filters.params(page), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DiscoverMulti fetches pages 1..pages in order and merges them into a single
// list deduplicated by movie id, preserving first-seen order. A page with no
// results is treated as exhaustion and stops the loop. The page count is
// floored at 1 and capped at maxDiscoverPages.
func (c *Client) DiscoverMulti(ctx context.Context, filters DiscoverFilters, pages int) ([]Movie, error) {
	if pages < 1 {
		pages = 1
	}
	if pages > maxDiscoverPages {
		pages = maxDiscoverPages
	}

	seen := make(map[int64]struct{})
	var merged []Movie
	for page := 1; page <= pages; page++ {
		resp, err := c.DiscoverPage(ctx, filters, page)
		if err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}
		for _, movie := range resp.Results {
			if _, dup := seen[movie.ID]; dup {
				continue
			}
			seen[movie.ID] = struct{}{}
			merged = append(merged, movie)
		}
	}
	return merged, nil
}
