package cache

import (
	"context"
	"sync"
	"time"

	"storefront.GO/catalog/filter"
	catalogEntity "storefront.GO/model/entity/catalog"
)

// CategoryStore is the lookup the cache performs on a miss: find the unique
// top-level category whose name equals one of the literal spellings.
// Returns (nil, nil) when no such category exists.
type CategoryStore interface {
	FindTopLevelByNames(ctx context.Context, names []string) (*catalogEntity.Category, error)
}

type entry struct {
	category  *catalogEntity.Category // nil means cached absence
	fetchedAt time.Time
}

// CategoryCache memoizes top-level category resolution per search type
// (women/men/kids). Absence is cached like presence so a missing category
// does not trigger a store query per request. Entries go stale after ttl and
// are refreshed on next access; a background sweeper bounds memory.
type CategoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	store   CategoryStore
	now     func() time.Time
}

// NewCategoryCache builds a cache around store. now may be nil (wall clock).
func NewCategoryCache(store CategoryStore, ttl time.Duration, now func() time.Time) *CategoryCache {
	if now == nil {
		now = time.Now
	}
	return &CategoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		store:   store,
		now:     now,
	}
}

func cacheKey(searchType string) string {
	return "category_" + searchType
}

// Resolve returns the top-level category for a search type, or nil when the
// store has none. Store infrastructure errors propagate and are not cached.
func (c *CategoryCache) Resolve(ctx context.Context, searchType string) (*catalogEntity.Category, error) {
	names, ok := filter.CategorySpellings[searchType]
	if !ok {
		return nil, nil
	}
	key := cacheKey(searchType)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.category, nil
	}

	// The write lock is held across the lookup so simultaneous cold
	// resolves for the same search type issue a single store query.
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.category, nil
	}
	cat, err := c.store.FindTopLevelByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	c.entries[key] = entry{category: cat, fetchedAt: c.now()}
	return cat, nil
}

// Cleanup evicts entries older than ttl and returns how many were removed.
// Safe to race with Resolve: an evicted entry is simply recreated on next
// access.
func (c *CategoryCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries (stale included until swept).
func (c *CategoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper runs Cleanup every interval until the returned stop function
// is called. Call stop on process shutdown.
func (c *CategoryCache) StartSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
