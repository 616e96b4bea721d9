package dtdd

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Status classifies a movie for the dog-death topic.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusUnsafe  Status = "unsafe"
	StatusUnknown Status = "unknown"
)

// FlexInt decodes JSON numbers or numeric strings; anything else becomes zero.
// The DTDD API is loose about field types across items.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}

// FlexBool decodes JSON booleans or 0/1 integers. Present reports whether the
// field carried a usable value at all.
type FlexBool struct {
	Present bool
	Value   bool
}

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexBool{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool{Present: true, Value: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexBool{Present: true, Value: n != 0}
		return nil
	}
	*f = FlexBool{}
	return nil
}

// SearchItem is one result from /dddsearch.
type SearchItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	TMDBID      int64   `json:"tmdbId"`
	ReleaseYear FlexInt `json:"releaseYear"`
}

// SearchResponse models the /dddsearch payload.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

// Topic identifies a crowd-sourced content topic.
type Topic struct {
	LegacyID FlexInt `json:"legacyId"`
	Name     string  `json:"name"`
	DoesName string  `json:"doesName"`
}

// TopicStat is one entry of a media item's topic statistics.
type TopicStat struct {
	Topic  Topic    `json:"topic"`
	IsYes  FlexBool `json:"isYes"`
	YesSum *int     `json:"yesSum"`
	NoSum  *int     `json:"noSum"`
}

// MediaResponse models the /media/{id} payload.
type MediaResponse struct {
	TopicItemStats []TopicStat `json:"topicItemStats"`
}
