package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultMemoryEntries bounds a MemoryCache created with a non-positive size.
const DefaultMemoryEntries = 256

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	seq       uint64
}

// MemoryCache keeps entries in process. When full, the oldest write is
// evicted.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	max     int
	seq     uint64
}

// NewMemoryCache creates a cache holding at most maxEntries entries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryCache{entries: make(map[string]memoryEntry), max: maxEntries}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evictOldest()
	}
	c.seq++
	e := memoryEntry{data: data, seq: c.seq}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// DeletePrefix removes every key starting with prefix and returns how many
// were removed.
func (c *MemoryCache) DeletePrefix(ctx context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Close() error { return nil }

func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest uint64
	for k, e := range c.entries {
		if oldestKey == "" || e.seq < oldest {
			oldestKey, oldest = k, e.seq
		}
	}
	delete(c.entries, oldestKey)
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
