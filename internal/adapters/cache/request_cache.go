package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Amund211/rollcall/internal/logging"
)

// RequestCache stores the results of idempotent requests and coalesces
// concurrent identical requests into a single call.
type RequestCache[T any] struct {
	store   Cache[T]
	flights singleflight.Group

	// A load only stores its result if neither its key nor the whole cache
	// was invalidated while it ran. Guarded by storeMu.
	storeMu    sync.Mutex
	generation uint64
	epochs     map[string]uint64
}

func NewRequestCache[T any](store Cache[T]) *RequestCache[T] {
	return &RequestCache[T]{
		store:  store,
		epochs: make(map[string]uint64),
	}
}

type lookupResult string

const (
	lookupHit    lookupResult = "hit"
	lookupMiss   lookupResult = "miss"
	lookupShared lookupResult = "shared"
)

type version struct {
	generation uint64
	epoch      uint64
}

// version returns the invalidation version of storeKey and registers the key so
// InvalidateURL can find loads that have not stored anything yet
func (c *RequestCache[T]) version(storeKey string) version {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	epoch, ok := c.epochs[storeKey]
	if !ok {
		c.epochs[storeKey] = 0
	}
	return version{generation: c.generation, epoch: epoch}
}

// bump marks storeKey as invalidated. Callers hold storeMu.
func (c *RequestCache[T]) bump(storeKey string) {
	c.epochs[storeKey]++
}

type loaded[T any] struct {
	data      T
	fromStore bool
}

// GetOrCreate returns the cached value for key, or calls create to produce it.
// Concurrent callers for the same key share one call to create, and its error.
// Errors are never cached. The returned bool is true if this caller ran create.
func (c *RequestCache[T]) GetOrCreate(ctx context.Context, key Key, ttl time.Duration, create func(context.Context) (T, error)) (T, bool, error) {
	data, result, err := c.getOrCreate(ctx, key, ttl, create)
	return data, result == lookupMiss, err
}

func (c *RequestCache[T]) getOrCreate(ctx context.Context, key Key, ttl time.Duration, create func(context.Context) (T, error)) (T, lookupResult, error) {
	storeKey := key.String()
	logger := logging.FromContext(ctx).With("cacheKey", storeKey)
	var empty T

	if data, ok := c.store.get(storeKey); ok {
		logger.DebugContext(ctx, "Request cache lookup", "cache", lookupHit)
		metrics.lookupCount.Add(ctx, 1, withResult(lookupHit))
		return data, lookupHit, nil
	}

	v := c.version(storeKey)
	flightKey := fmt.Sprintf("%d.%d/%s", v.generation, v.epoch, storeKey)

	// The load is shared by every caller that joins it, so it must outlive
	// the context of the caller that happened to start it.
	loadCtx := context.WithoutCancel(ctx)
	ran := false

	resultCh := c.flights.DoChan(flightKey, func() (any, error) {
		ran = true

		// Another flight may have stored the value since our lookup
		if data, ok := c.store.get(storeKey); ok {
			return loaded[T]{data: data, fromStore: true}, nil
		}

		logger.InfoContext(ctx, "Request cache lookup", "cache", lookupMiss)

		data, err := create(loadCtx)
		if err != nil {
			return nil, err
		}

		c.storeMu.Lock()
		defer c.storeMu.Unlock()
		if c.generation == v.generation && c.epochs[storeKey] == v.epoch {
			c.store.set(storeKey, data, ttl)
		} else {
			logger.InfoContext(ctx, "Cache invalidated during load, not storing result")
		}

		return loaded[T]{data: data}, nil
	})

	select {
	case <-ctx.Done():
		return empty, lookupShared, ctx.Err()
	case flight := <-resultCh:
		result := lookupShared
		if ran {
			result = lookupMiss
			if value, ok := flight.Val.(loaded[T]); ok && value.fromStore {
				result = lookupHit
			}
		}
		logger.DebugContext(ctx, "Request cache lookup", "cache", result)
		metrics.lookupCount.Add(ctx, 1, withResult(result))

		if flight.Err != nil {
			return empty, result, fmt.Errorf("failed to create cache entry: %w", flight.Err)
		}

		value, ok := flight.Val.(loaded[T])
		if !ok {
			return empty, result, fmt.Errorf("unexpected cached value type %T", flight.Val)
		}
		return value.data, result, nil
	}
}

// Refresh drops any cached value for key and loads it again
func (c *RequestCache[T]) Refresh(ctx context.Context, key Key, ttl time.Duration, create func(context.Context) (T, error)) (T, error) {
	c.Invalidate(key)
	data, _, err := c.GetOrCreate(ctx, key, ttl, create)
	return data, err
}

// Invalidate drops the entry for key. Loads of other keys are unaffected.
func (c *RequestCache[T]) Invalidate(key Key) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	storeKey := key.String()
	c.store.delete(storeKey)
	c.bump(storeKey)
}

// InvalidateURL drops every entry for requests to url, regardless of method,
// headers or body
func (c *RequestCache[T]) InvalidateURL(url string) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	for _, storeKey := range c.store.keys() {
		if keyURL, ok := urlOf(storeKey); ok && keyURL == url {
			c.store.delete(storeKey)
		}
	}
	// Every stored key was registered by the load that stored it
	for storeKey := range c.epochs {
		if keyURL, ok := urlOf(storeKey); ok && keyURL == url {
			c.bump(storeKey)
		}
	}
}

// InvalidateAll drops every entry. Loads in progress are not cancelled.
func (c *RequestCache[T]) InvalidateAll() {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	c.store.clear()
	c.generation++
	clear(c.epochs)
}
