package currency

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// RateCache remembers rates per currency pair for a fixed TTL.
// It is safe for concurrent use.
type RateCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	rates map[string]cachedRate
}

// NewRateCache returns an empty cache whose entries expire after ttl.
// A non-positive ttl disables caching.
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{
		ttl:   ttl,
		now:   time.Now,
		rates: make(map[string]cachedRate),
	}
}

func pairKey(from, to string) string {
	return from + "->" + to
}

// Get returns a rate that is still fresh.
func (c *RateCache) Get(from, to string) (decimal.Decimal, bool) {
	if c.ttl <= 0 {
		return decimal.Zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.rates[pairKey(from, to)]
	if !ok {
		return decimal.Zero, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.rates, pairKey(from, to))
		return decimal.Zero, false
	}
	return entry.rate, true
}

// Put stores a freshly fetched rate.
func (c *RateCache) Put(from, to string, rate decimal.Decimal) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[pairKey(from, to)] = cachedRate{rate: rate, fetchedAt: c.now()}
}

// Len returns the number of cached pairs, expired ones included.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rates)
}
