package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type ttlCache[T any] struct {
	cache *ttlcache.Cache[string, T]
}

func (c *ttlCache[T]) get(key string) (T, bool) {
	item := c.cache.Get(key)
	if item == nil {
		var empty T
		return empty, false
	}
	return item.Value(), true
}

func (c *ttlCache[T]) set(key string, data T, ttl time.Duration) {
	c.cache.Set(key, data, ttl)
}

func (c *ttlCache[T]) delete(key string) {
	c.cache.Delete(key)
}

func (c *ttlCache[T]) clear() {
	c.cache.DeleteAll()
}

func (c *ttlCache[T]) keys() []string {
	return c.cache.Keys()
}

// NewTTLCache stores entries in a ttlcache. Expired entries are dropped on read,
// no cleanup goroutine is started.
func NewTTLCache[T any]() Cache[T] {
	return &ttlCache[T]{
		cache: ttlcache.New[string, T](
			ttlcache.WithTTL[string, T](DefaultTTL),
			ttlcache.WithDisableTouchOnHit[string, T](),
		),
	}
}
