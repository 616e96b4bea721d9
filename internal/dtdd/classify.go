package dtdd

import (
	"context"
	"strings"

	"pawprint/internal/metrics"
)

// dogDiesLegacyTopicID is the stable legacy identifier of the "Does the dog
// die" topic. Display-name matching below is the fallback for payloads that
// omit it.
const dogDiesLegacyTopicID = 25

// Classify determines whether a dog dies in the given movie.
//
// The title is used for the search unless an IMDb id is supplied, which is
// more precise. Errors from either network call are returned alongside
// StatusUnknown; callers treat annotator failure as unknown and continue.
func (c *Client) Classify(ctx context.Context, title string, tmdbID int64, year int, imdbID string) (Status, error) {
	status, err := c.classify(ctx, title, tmdbID, year, imdbID)
	metrics.SafetyChecks.WithLabelValues(string(status)).Inc()
	return status, err
}

func (c *Client) classify(ctx context.Context, title string, tmdbID int64, year int, imdbID string) (Status, error) {
	if !c.Enabled() {
		return StatusUnknown, nil
	}
	if strings.TrimSpace(title) == "" {
		return StatusUnknown, nil
	}

	var (
		payload *SearchResponse
		err     error
	)
	if strings.TrimSpace(imdbID) != "" {
		payload, err = c.searchIMDb(ctx, imdbID)
	} else {
		payload, err = c.search(ctx, title)
	}
	if err != nil {
		return StatusUnknown, err
	}
	if payload == nil {
		return StatusUnknown, nil
	}

	best := pickBestItem(payload.Items, tmdbID, year)
	if best == nil || best.ID <= 0 {
		return StatusUnknown, nil
	}

	media, err := c.media(ctx, best.ID)
	if err != nil {
		return StatusUnknown, err
	}

	dies := dogDiesFromStats(media.TopicItemStats)
	if dies == nil {
		return StatusUnknown, nil
	}
	if *dies {
		return StatusUnsafe, nil
	}
	return StatusSafe, nil
}

// pickBestItem chooses the search item most likely to be the movie in
// question. Priority: exact TMDB id match, then matching release year, then
// the first item.
func pickBestItem(items []SearchItem, tmdbID int64, year int) *SearchItem {
	if len(items) == 0 {
		return nil
	}
	if tmdbID > 0 {
		for i := range items {
			if items[i].TMDBID == tmdbID {
				return &items[i]
			}
		}
	}
	if year > 0 {
		for i := range items {
			if int(items[i].ReleaseYear) == year {
				return &items[i]
			}
		}
	}
	return &items[0]
}

// dogDiesFromStats scans the topic statistics for the dog-death topic and
// resolves its verdict. nil means unknown: no matching topic, no usable flag,
// or a zero-zero vote split.
func dogDiesFromStats(stats []TopicStat) *bool {
	for _, entry := range stats {
		if !isDogDiesTopic(entry.Topic) {
			continue
		}

		if entry.IsYes.Present {
			v := entry.IsYes.Value
			return &v
		}

		if entry.YesSum != nil && entry.NoSum != nil {
			if *entry.YesSum == 0 && *entry.NoSum == 0 {
				return nil
			}
			// Ties resolve to "does not die": strict comparison.
			v := *entry.YesSum > *entry.NoSum
			return &v
		}

		return nil
	}
	return nil
}

func isDogDiesTopic(topic Topic) bool {
	doesName := strings.ToLower(strings.TrimSpace(topic.DoesName))
	name := strings.ToLower(strings.TrimSpace(topic.Name))
	return int(topic.LegacyID) == dogDiesLegacyTopicID ||
		strings.Contains(doesName, "does the dog die") ||
		name == "a dog dies" ||
		strings.Contains(name, "dog die")
}
