package cache

import (
	"sync"
	"testing"
	"time"
)

func TestSet_Get(t *testing.T) {
	c := New()
	c.Set("k", "val", 0)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := New()
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := New()
	c.Set("k", "x", 0)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestGet_Expired(t *testing.T) {
	now := time.Unix(1000, 0)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := NewWithClock(clock)
	c.Set("k", 1, time.Minute)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("Get before expiry: want true")
	}

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	if _, ok := c.Get("k"); ok {
		t.Error("Get after expiry: want false")
	}
}

func TestCleanup(t *testing.T) {
	now := time.Unix(1000, 0)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := NewWithClock(clock)
	c.Set("stays", 1, 0)
	c.Set("expires", 2, time.Second)

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()

	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup = %d, want 1", removed)
	}
	if _, ok := c.Get("stays"); !ok {
		t.Error("Cleanup evicted a non-expiring entry")
	}
}

func TestStartSweeper_Stop(t *testing.T) {
	c := New()
	stop := c.StartSweeper(time.Millisecond)
	stop()
	stop() // idempotent
}
