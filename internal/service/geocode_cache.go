package service

import (
	"container/list"
	"context"
	"strings"
	"sync"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/internal/observability"
)

// CachedGeocoder wraps a Geocoder with a small thread-safe LRU cache.
// Only successful lookups are cached, so transient misses can be retried.
type CachedGeocoder struct {
	inner      domain.Geocoder
	metrics    *observability.Metrics
	maxEntries int

	mu    sync.Mutex
	order *list.List // front = most recently used
	items map[string]*list.Element
}

type cacheEntry struct {
	key    string
	result domain.GeocodeResult
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
// metrics may be nil.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:      inner,
		metrics:    metrics,
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
	}
}

// Geocode serves from cache when possible, delegating misses to the inner
// geocoder.
func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (domain.GeocodeResult, bool, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	if result, ok := c.lookup(key); ok {
		c.countCache("hit")
		return result, true, nil
	}
	c.countCache("miss")

	result, found, err := c.inner.Geocode(ctx, query)
	if err != nil || !found {
		return result, found, err
	}
	c.store(key, result)
	return result, true, nil
}

func (c *CachedGeocoder) lookup(key string) (domain.GeocodeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return domain.GeocodeResult{}, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).result, true
}

func (c *CachedGeocoder) store(key string, result domain.GeocodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheEntry).result = result
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, result: result})

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

func (c *CachedGeocoder) countCache(result string) {
	if c.metrics != nil {
		c.metrics.GeocodeCache.WithLabelValues(result).Inc()
	}
}
