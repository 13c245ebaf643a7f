package availability

import (
	"testing"
	"time"

	"anchor/internal/clock"
)

func TestCacheExpiry(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC))
	cache := NewCache(5*time.Minute, clk)

	if _, ok := cache.Get(); ok {
		t.Fatal("empty cache should miss")
	}

	data := &Data{}
	cache.Set(data)

	got, ok := cache.Get()
	if !ok || got != data {
		t.Fatal("expected cached data back")
	}

	clk.Add(4 * time.Minute)
	if _, ok := cache.Get(); !ok {
		t.Error("cache expired before its TTL")
	}

	clk.Add(time.Minute)
	if _, ok := cache.Get(); ok {
		t.Error("cache still serving after TTL")
	}
}

func TestCacheDisabled(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC))
	cache := NewCache(0, clk)

	cache.Set(&Data{})
	if _, ok := cache.Get(); ok {
		t.Error("zero TTL cache must never hit")
	}

	// A nil cache behaves like a disabled one.
	var none *Cache
	none.Set(&Data{})
	if _, ok := none.Get(); ok {
		t.Error("nil cache must never hit")
	}
}
