package cache

import (
	"sync"
	"time"
)

type basicCacheEntry[T any] struct {
	data      T
	expiresAt time.Time
}

type basicCache[T any] struct {
	cache     map[string]basicCacheEntry[T]
	cacheLock sync.Mutex
	nowFunc   func() time.Time
}

func (c *basicCache[T]) get(key string) (T, bool) {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		var empty T
		return empty, false
	}

	if !c.nowFunc().Before(entry.expiresAt) {
		delete(c.cache, key)
		var empty T
		return empty, false
	}

	return entry.data, true
}

func (c *basicCache[T]) set(key string, data T, ttl time.Duration) {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	c.cache[key] = basicCacheEntry[T]{data: data, expiresAt: c.nowFunc().Add(ttl)}
}

func (c *basicCache[T]) delete(key string) {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	delete(c.cache, key)
}

func (c *basicCache[T]) clear() {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	clear(c.cache)
}

func (c *basicCache[T]) keys() []string {
	c.cacheLock.Lock()
	defer c.cacheLock.Unlock()

	keys := make([]string, 0, len(c.cache))
	for key := range c.cache {
		keys = append(keys, key)
	}
	return keys
}

func NewBasicCache[T any](nowFunc func() time.Time) *basicCache[T] {
	return &basicCache[T]{
		cache:   make(map[string]basicCacheEntry[T]),
		nowFunc: nowFunc,
	}
}
