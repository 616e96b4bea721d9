package ttlcache

import (
	"testing"
	"time"
)

func TestGetReturnsFreshEntry(t *testing.T) {
	c := New(time.Hour)
	c.Set("k", 42)

	v, ok := c.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("expected fresh entry, got %v (%v)", v, ok)
	}
}

func TestGetRejectsStaleEntry(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New(time.Hour, WithClock(func() time.Time { return now }))
	c.Set("k", "v")

	now = now.Add(time.Hour)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry at exactly ttl age must be stale")
	}
}

func TestSetOverwritesRefreshesTimestamp(t *testing.T) {
	now := time.Unix(1000, 0)
	c := New(time.Hour, WithClock(func() time.Time { return now }))
	c.Set("k", "old")

	now = now.Add(59 * time.Minute)
	c.Set("k", "new")

	now = now.Add(30 * time.Minute)
	v, ok := c.Get("k")
	if !ok || v.(string) != "new" {
		t.Fatalf("expected refreshed entry, got %v (%v)", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("expected single entry, got %d", c.Len())
	}
}

func TestBlankKeyIgnored(t *testing.T) {
	c := New(time.Hour)
	c.Set("  ", "v")
	if c.Len() != 0 {
		t.Fatalf("blank key should not be stored, len=%d", c.Len())
	}
	if _, ok := c.Get(""); ok {
		t.Fatal("blank key lookup should miss")
	}
}
