package cache

import "time"

const (
	DefaultTTL = 5 * time.Minute
	ConfigTTL  = 60 * time.Minute
)

// Cache is a key/value store with per-entry expiry.
// Expired entries are never returned from get.
type Cache[T any] interface {
	get(key string) (T, bool)
	set(key string, data T, ttl time.Duration)
	delete(key string)
	clear()
	keys() []string
}
