package geocache

import (
	"context"
	"time"

	"github.com/yanqian/ai-horoscope/internal/domain/geo"
	"github.com/yanqian/ai-horoscope/pkg/metrics"
)

// LookupObserver records cache lookup outcomes.
type LookupObserver interface {
	ObserveCacheLookup(result string)
}

// Instrumented counts hits, misses and errors of the wrapped cache.
type Instrumented struct {
	next     geo.Cache
	observer LookupObserver
}

// Instrument wraps next.
func Instrument(next geo.Cache, observer LookupObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

func (c *Instrumented) Get(ctx context.Context, key string) (geo.Entry, bool, error) {
	entry, ok, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		c.observer.ObserveCacheLookup(metrics.CacheError)
	case ok:
		c.observer.ObserveCacheLookup(metrics.CacheHit)
	default:
		c.observer.ObserveCacheLookup(metrics.CacheMiss)
	}
	return entry, ok, err
}

func (c *Instrumented) Put(ctx context.Context, key string, entry geo.Entry, ttl time.Duration) error {
	return c.next.Put(ctx, key, entry, ttl)
}

var _ geo.Cache = (*Instrumented)(nil)
