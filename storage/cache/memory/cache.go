// Package memcache is an in-process core.Cache used when no Redis server is configured.
package memcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
)

type item struct {
	data      []byte
	expiresAt time.Time // zero: never
}

type Cache struct {
	mu      sync.RWMutex
	items   map[string]item
	nowFunc func() time.Time
}

var _ core.Cache = (*Cache)(nil)

func New() *Cache {
	return &Cache{items: make(map[string]item), nowFunc: time.Now}
}

// Set stores the JSON encoding of value under key. A ttl <= 0 never expires.
func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return core.ErrCacheKey
	}
	if value == nil {
		return core.ErrCacheNilVal
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "encoding cache value")
	}

	it := item{data: data}
	if ttl > 0 {
		it.expiresAt = c.nowFunc().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = it
	c.mu.Unlock()
	return nil
}

// Get decodes the value stored under key into dst.
// Expired entries are dropped and reported as core.ErrCacheMiss.
func (c *Cache) Get(_ context.Context, key string, dst interface{}) error {
	if key == "" {
		return core.ErrCacheKey
	}

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return core.ErrCacheMiss
	}
	if !it.expiresAt.IsZero() && !c.nowFunc().Before(it.expiresAt) {
		c.mu.Lock()
		if cur, found := c.items[key]; found && cur.expiresAt.Equal(it.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return core.ErrCacheMiss
	}

	return errors.Wrap(json.Unmarshal(it.data, dst), "decoding cache value")
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included until they are read.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
