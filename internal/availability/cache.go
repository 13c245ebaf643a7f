package availability

import (
	"sync"
	"time"

	"anchor/internal/clock"
)

// Cache holds the last computed availability window for a fixed TTL.
// Concurrent repopulation is harmless (computation is idempotent), so reads
// and writes just take the lock without any singleflight coordination.
type Cache struct {
	mu       sync.RWMutex
	data     *Data
	storedAt time.Time
	ttl      time.Duration
	clock    clock.Clock
}

// NewCache creates a cache with the given TTL. A zero TTL disables caching.
func NewCache(ttl time.Duration, clk clock.Clock) *Cache {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Cache{ttl: ttl, clock: clk}
}

// Get returns the cached data if present and not expired.
func (c *Cache) Get() (*Data, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil || c.clock.Now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

// Set stores freshly computed data.
func (c *Cache) Set(data *Data) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.storedAt = c.clock.Now()
}
