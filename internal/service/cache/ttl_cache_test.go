package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(WithClock(func() time.Time { return now }))

	if err := c.SetBytes("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	b, ok, err := c.GetBytes("k")
	if err != nil || !ok || string(b) != "v" {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}

	now = now.Add(time.Hour + time.Second)
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatalf("expected expiry after ttl")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry evicted, len=%d", c.Len())
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache(WithClock(func() time.Time { return now }))

	_ = c.SetBytes("k", []byte("v"), 0)
	now = now.Add(1000 * time.Hour)
	if _, ok, _ := c.GetBytes("k"); !ok {
		t.Fatalf("zero ttl entry should not expire")
	}
}
