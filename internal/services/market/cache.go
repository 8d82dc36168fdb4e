package market

import (
	"context"
	"sync"
	"time"

	"github.com/stellarpath/route-engine/internal/metrics"
)

// CachingSupplier memoizes an inner supplier's result for a TTL. A failed
// refresh is never cached; the next call retries the inner supplier.
type CachingSupplier struct {
	inner PairSupplier
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	records   []PairRecord
	fetchedAt time.Time
	valid     bool
}

func NewCachingSupplier(inner PairSupplier, ttl time.Duration) *CachingSupplier {
	return &CachingSupplier{inner: inner, ttl: ttl, now: time.Now}
}

func (c *CachingSupplier) Pairs(ctx context.Context) ([]PairRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		metrics.PairCacheHits.Inc()
		return c.records, nil
	}
	metrics.PairCacheMisses.Inc()

	records, err := c.inner.Pairs(ctx)
	if err != nil {
		return nil, err
	}
	c.records = records
	c.fetchedAt = c.now()
	c.valid = true
	return records, nil
}

// Reset drops the cached snapshot so the next call refetches.
func (c *CachingSupplier) Reset() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
