package overpass

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/observability"
)

// CachedLocator wraps a FacilityLocator with a TTL cache keyed on the
// facility kind and the coordinate rounded to about 10 m.
type CachedLocator struct {
	inner   domain.FacilityLocator
	cache   *gocache.Cache
	metrics *observability.Metrics
}

type cachedFacility struct {
	facility domain.Facility
	ok       bool
}

// NewCachedLocator creates a cache decorator. Entries expire after ttl.
func NewCachedLocator(inner domain.FacilityLocator, ttl time.Duration, metrics *observability.Metrics) *CachedLocator {
	return &CachedLocator{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

// Nearest serves both hits and confirmed absences from the cache. Errors
// are never cached.
func (c *CachedLocator) Nearest(ctx context.Context, lat, lon float64, kind domain.FacilityKind) (domain.Facility, bool, error) {
	key := cacheKey(lat, lon, kind)
	if v, found := c.cache.Get(key); found {
		c.metrics.FacilityCache.WithLabelValues("hit").Inc()
		entry := v.(cachedFacility)
		return entry.facility, entry.ok, nil
	}
	c.metrics.FacilityCache.WithLabelValues("miss").Inc()

	f, ok, err := c.inner.Nearest(ctx, lat, lon, kind)
	if err != nil {
		return f, ok, err
	}
	c.cache.SetDefault(key, cachedFacility{facility: f, ok: ok})
	return f, ok, nil
}

func cacheKey(lat, lon float64, kind domain.FacilityKind) string {
	return fmt.Sprintf("%s:%.4f,%.4f", kind, lat, lon)
}
