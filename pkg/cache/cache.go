package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRUCache is a size-bounded cache with per-entry TTL. Expired entries are
// invisible to readers and purged in the background by the underlying LRU.
type LRUCache struct {
	// mu makes SetIfAbsent atomic; single operations are already safe.
	mu  sync.Mutex
	lru *expirable.LRU[string, []byte]
}

func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	return &LRUCache{lru: expirable.NewLRU[string, []byte](capacity, nil, ttl)}
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores the value and resets its TTL.
func (c *LRUCache) Set(key string, value []byte) {
	c.lru.Add(key, value)
}

// SetIfAbsent stores the value only when no live entry exists for key and
// reports whether it did.
func (c *LRUCache) SetIfAbsent(key string, value []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lru.Peek(key); ok {
		return false
	}
	c.lru.Add(key, value)
	return true
}

func (c *LRUCache) Delete(key string) {
	c.lru.Remove(key)
}

func (c *LRUCache) Size() int {
	return c.lru.Len()
}
