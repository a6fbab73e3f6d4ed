package cache

import (
	"sync"
	"time"
)

// Cache is a small thread-safe TTL key-value store. Zero TTL means no
// expiration. Construct one per concern and pass it by reference; there is
// no process-wide instance.
type Cache struct {
	m   sync.Map
	now func() time.Time
}

type item struct {
	value     interface{}
	expiresAt time.Time // zero means no expiration
}

func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock injects the clock, for tests.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{now: now}
}

// Set stores a value. ttl of 0 means the value does not expire.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.m.Store(key, item{value: value, expiresAt: expiresAt})
}

// Get returns (value, true) if present and not expired. Expired entries are
// deleted on read.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if !it.expiresAt.IsZero() && c.now().After(it.expiresAt) {
		c.m.Delete(key)
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// Cleanup evicts expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	removed := 0
	now := c.now()
	c.m.Range(func(key, value interface{}) bool {
		it := value.(item)
		if !it.expiresAt.IsZero() && now.After(it.expiresAt) {
			c.m.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartSweeper runs Cleanup every interval until the returned stop function
// is called.
func (c *Cache) StartSweeper(interval time.Duration) (stop func()) {
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
