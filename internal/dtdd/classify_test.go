package dtdd

import (
	"encoding/json"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestPickBestItemPrefersTMDBMatch(t *testing.T) {
	items := []SearchItem{
		{ID: 1, TMDBID: 10, ReleaseYear: 1999},
		{ID: 2, TMDBID: 20, ReleaseYear: 2004},
	}
	best := pickBestItem(items, 20, 1999)
	if best == nil || best.ID != 2 {
		t.Fatalf("expected tmdb match to win, got %+v", best)
	}
}

func TestPickBestItemFallsBackToYearThenFirst(t *testing.T) {
	items := []SearchItem{
		{ID: 1, ReleaseYear: 1999},
		{ID: 2, ReleaseYear: 2004},
	}
	if best := pickBestItem(items, 777, 2004); best == nil || best.ID != 2 {
		t.Fatalf("expected year match, got %+v", best)
	}
	if best := pickBestItem(items, 777, 1950); best == nil || best.ID != 1 {
		t.Fatalf("expected first item fallback, got %+v", best)
	}
	if best := pickBestItem(nil, 1, 1999); best != nil {
		t.Fatalf("expected nil for empty list, got %+v", best)
	}
}

func TestDogDiesFromStatsExplicitFlagWins(t *testing.T) {
	stats := []TopicStat{{
		Topic: Topic{LegacyID: dogDiesLegacyTopicID},
		IsYes: FlexBool{Present: true, Value: true},
		// Votes disagree with the flag; the flag wins.
		YesSum: intPtr(0),
		NoSum:  intPtr(100),
	}}
	dies := dogDiesFromStats(stats)
	if dies == nil || !*dies {
		t.Fatalf("expected explicit flag to win, got %v", dies)
	}
}

func TestDogDiesFromStatsVoteMajority(t *testing.T) {
	cases := []struct {
		name string
		yes  int
		no   int
		want *bool
	}{
		{"yes majority", 10, 3, boolPtr(true)},
		{"no majority", 3, 10, boolPtr(false)},
		{"tie favors no", 5, 5, boolPtr(false)},
		{"both zero unknown", 0, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := []TopicStat{{
				Topic:  Topic{Name: "A dog dies"},
				YesSum: intPtr(tc.yes),
				NoSum:  intPtr(tc.no),
			}}
			got := dogDiesFromStats(stats)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("expected %v, got %v", *tc.want, *got)
			}
		})
	}
}

func TestDogDiesFromStatsMissingTotalsUnknown(t *testing.T) {
	stats := []TopicStat{{
		Topic:  Topic{LegacyID: dogDiesLegacyTopicID},
		YesSum: intPtr(4),
	}}
	if got := dogDiesFromStats(stats); got != nil {
		t.Fatalf("missing noSum should be unknown, got %v", *got)
	}
}

func TestDogDiesFromStatsNoMatchingTopic(t *testing.T) {
	stats := []TopicStat{{
		Topic:  Topic{LegacyID: 12, Name: "jump scares"},
		YesSum: intPtr(9),
		NoSum:  intPtr(1),
	}}
	if got := dogDiesFromStats(stats); got != nil {
		t.Fatalf("unrelated topic should be unknown, got %v", *got)
	}
}

func TestIsDogDiesTopicNameVariants(t *testing.T) {
	cases := []Topic{
		{LegacyID: dogDiesLegacyTopicID},
		{DoesName: " DOES THE DOG DIE? "},
		{Name: "A Dog Dies"},
		{Name: "the dog dies on screen"},
	}
	for i, topic := range cases {
		if !isDogDiesTopic(topic) {
			t.Fatalf("case %d should match: %+v", i, topic)
		}
	}
	if isDogDiesTopic(Topic{Name: "a cat dies"}) {
		t.Fatal("cat topic must not match")
	}
}

func TestFlexBoolDecoding(t *testing.T) {
	var stat TopicStat
	if err := json.Unmarshal([]byte(`{"isYes":1}`), &stat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !stat.IsYes.Present || !stat.IsYes.Value {
		t.Fatalf("integer 1 should decode as present true, got %+v", stat.IsYes)
	}

	stat = TopicStat{}
	if err := json.Unmarshal([]byte(`{"isYes":null}`), &stat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stat.IsYes.Present {
		t.Fatalf("null should decode as absent, got %+v", stat.IsYes)
	}
}

func TestFlexIntDecoding(t *testing.T) {
	var item SearchItem
	if err := json.Unmarshal([]byte(`{"releaseYear":"1994"}`), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.ReleaseYear != 1994 {
		t.Fatalf("string year should decode, got %d", item.ReleaseYear)
	}
	if err := json.Unmarshal([]byte(`{"releaseYear":"n/a"}`), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.ReleaseYear != 0 {
		t.Fatalf("junk year should decode to zero, got %d", item.ReleaseYear)
	}
}

func boolPtr(v bool) *bool { return &v }
