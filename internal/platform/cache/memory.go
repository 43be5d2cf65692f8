package cache

import (
	"context"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/phrazzld/astral-api/internal/domain"
)

const defaultMemoryTTL = 24 * time.Hour

type memoryItem struct {
	chart    domain.BirthChart
	expireAt time.Time
}

// MemoryCache implements ChartCache with LRU eviction and per-entry TTL.
// Expired entries are dropped lazily when read.
type MemoryCache struct {
	mu    sync.Mutex
	items *lru.Cache
	now   func() time.Time
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock replaces the time source; used by tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache creates an in-memory cache holding at most maxEntries charts.
func NewMemoryCache(maxEntries int, opts ...MemoryOption) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	c := &MemoryCache{
		items: lru.New(maxEntries),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ChartCache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.BirthChart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	item := v.(*memoryItem)
	if c.now().After(item.expireAt) {
		c.items.Remove(key)
		return nil, ErrCacheMiss
	}
	chart := item.chart
	return &chart, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, chart *domain.BirthChart, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultMemoryTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Add(key, &memoryItem{chart: *chart, expireAt: c.now().Add(ttl)})
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		c.items.Remove(key)
	}
	return nil
}

// Len reports the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

func (c *MemoryCache) Kind() string { return "memory" }

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Clear()
	return nil
}
