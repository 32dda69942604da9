package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = NewKey("POST", "http://localhost:5003/api/attendance/date", nil, []byte(`{"date":"2024-01-01"}`))

func valueCallback(value string, calls *atomic.Int32) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return value, nil
	}
}

func unreachable(t *testing.T) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		t.Helper()
		t.Error("create should not be called")
		return "", nil
	}
}

// blockingCallback signals on started and returns once release is closed
func blockingCallback(value string, err error, started chan<- struct{}, release <-chan struct{}, calls *atomic.Int32) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		started <- struct{}{}
		<-release
		return value, err
	}
}

func newTestCache() (*RequestCache[string], *fakeClock) {
	clock := newFakeClock()
	return NewRequestCache[string](NewBasicCache[string](clock.Now)), clock
}

func TestRequestCacheGetOrCreate(t *testing.T) {
	t.Parallel()

	t.Run("miss then hit", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}

		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data1", calls))
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "data1", data)

		data, created, err = requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "data1", data)

		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("different keys are independent", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		otherKey := NewKey("POST", testKey.URL, nil, []byte(`{"date":"2024-01-02"}`))

		data, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data1", calls))
		require.NoError(t, err)
		require.Equal(t, "data1", data)

		data, _, err = requestCache.GetOrCreate(t.Context(), otherKey, DefaultTTL, valueCallback("data2", calls))
		require.NoError(t, err)
		require.Equal(t, "data2", data)

		require.Equal(t, int32(2), calls.Load())
	})

	t.Run("entries expire after their ttl", func(t *testing.T) {
		t.Parallel()

		requestCache, clock := newTestCache()
		calls := &atomic.Int32{}

		_, _, err := requestCache.GetOrCreate(t.Context(), testKey, time.Minute, valueCallback("data1", calls))
		require.NoError(t, err)

		clock.advance(59 * time.Second)
		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, time.Minute, unreachable(t))
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "data1", data)

		clock.advance(time.Second)
		data, created, err = requestCache.GetOrCreate(t.Context(), testKey, time.Minute, valueCallback("data2", calls))
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "data2", data)
	})

	t.Run("errors are returned and not cached", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		errBackend := errors.New("backend down")

		_, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, func(context.Context) (string, error) {
			calls.Add(1)
			return "", errBackend
		})
		require.ErrorIs(t, err, errBackend)
		require.True(t, created)

		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data1", calls))
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "data1", data)
		require.Equal(t, int32(2), calls.Load())
	})

	t.Run("concurrent callers share one call", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		create := blockingCallback("shared", nil, started, release, calls)

		const callers = 10
		results := make([]string, callers)
		createdCount := &atomic.Int32{}
		wg := sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, create)
			assert.NoError(t, err)
			if created {
				createdCount.Add(1)
			}
			results[0] = data
		}()
		<-started

		for i := 1; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, create)
				assert.NoError(t, err)
				if created {
					createdCount.Add(1)
				}
				results[i] = data
			}()
		}

		// Let the joiners reach the flight before it completes
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		require.Equal(t, int32(1), createdCount.Load())
		for i, data := range results {
			require.Equal(t, "shared", data, fmt.Sprintf("caller %d", i))
		}
	})

	t.Run("concurrent callers share the error", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		errBackend := errors.New("backend down")
		create := blockingCallback("", errBackend, started, release, calls)

		errs := make(chan error, 2)
		go func() {
			_, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, create)
			errs <- err
		}()
		<-started
		go func() {
			_, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, create)
			errs <- err
		}()

		time.Sleep(20 * time.Millisecond)
		close(release)

		require.ErrorIs(t, <-errs, errBackend)
		require.ErrorIs(t, <-errs, errBackend)
		require.Equal(t, int32(1), calls.Load())

		_, ok := requestCache.store.get(testKey.String())
		require.False(t, ok)
	})

	t.Run("cancelled caller does not cancel the shared load", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		started := make(chan struct{}, 1)
		release := make(chan struct{})

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			_, _, err := requestCache.GetOrCreate(ctx, testKey, DefaultTTL, func(ctx context.Context) (string, error) {
				calls.Add(1)
				started <- struct{}{}
				<-release
				return "data1", ctx.Err()
			})
			done <- err
		}()
		<-started

		cancel()
		require.ErrorIs(t, <-done, context.Canceled)

		close(release)
		require.Eventually(t, func() bool {
			_, ok := requestCache.store.get(testKey.String())
			return ok
		}, time.Second, 5*time.Millisecond)

		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "data1", data)
		require.Equal(t, int32(1), calls.Load())
	})
}

func TestRequestCacheInvalidation(t *testing.T) {
	t.Parallel()

	t.Run("invalidate", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}

		_, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data1", calls))
		require.NoError(t, err)

		requestCache.Invalidate(testKey)

		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data2", calls))
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "data2", data)
	})

	t.Run("invalidate url drops every key for the url", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		sameURL := NewKey("POST", testKey.URL, nil, []byte(`{"date":"2024-01-02"}`))
		otherURL := NewKey("GET", "http://localhost:5002/api/employees", nil, nil)

		for _, key := range []Key{testKey, sameURL, otherURL} {
			_, _, err := requestCache.GetOrCreate(t.Context(), key, DefaultTTL, valueCallback("old", calls))
			require.NoError(t, err)
		}

		requestCache.InvalidateURL(testKey.URL)

		_, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("new", calls))
		require.NoError(t, err)
		require.True(t, created)

		_, created, err = requestCache.GetOrCreate(t.Context(), sameURL, DefaultTTL, valueCallback("new", calls))
		require.NoError(t, err)
		require.True(t, created)

		data, created, err := requestCache.GetOrCreate(t.Context(), otherURL, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "old", data)
	})

	t.Run("invalidate all", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		otherKey := NewKey("GET", "http://localhost:5002/api/employees", nil, nil)

		for _, key := range []Key{testKey, otherKey} {
			_, _, err := requestCache.GetOrCreate(t.Context(), key, DefaultTTL, valueCallback("old", calls))
			require.NoError(t, err)
		}

		requestCache.InvalidateAll()

		for _, key := range []Key{testKey, otherKey} {
			data, created, err := requestCache.GetOrCreate(t.Context(), key, DefaultTTL, valueCallback("new", calls))
			require.NoError(t, err)
			require.True(t, created)
			require.Equal(t, "new", data)
		}
	})

	t.Run("load in flight during invalidation is not stored", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		started := make(chan struct{}, 1)
		release := make(chan struct{})

		stale := make(chan string, 1)
		go func() {
			data, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, blockingCallback("stale", nil, started, release, calls))
			assert.NoError(t, err)
			stale <- data
		}()
		<-started

		requestCache.InvalidateAll()

		// A caller after the invalidation starts a new load instead of joining
		data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("fresh", calls))
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "fresh", data)

		close(release)
		require.Equal(t, "stale", <-stale)

		data, created, err = requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "fresh", data)
		require.Equal(t, int32(2), calls.Load())
	})

	t.Run("invalidating another key does not split an in-flight load", func(t *testing.T) {
		t.Parallel()

		for name, invalidate := range map[string]func(*RequestCache[string]){
			"key": func(c *RequestCache[string]) {
				c.Invalidate(NewKey("POST", testKey.URL, nil, []byte(`{"date":"2024-01-02"}`)))
			},
			"url": func(c *RequestCache[string]) {
				c.InvalidateURL("http://localhost:5002/api/employees")
			},
		} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				requestCache, _ := newTestCache()
				calls := &atomic.Int32{}
				started := make(chan struct{}, 1)
				release := make(chan struct{})
				create := blockingCallback("data1", nil, started, release, calls)

				results := make(chan string, 2)
				load := func() {
					data, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, create)
					assert.NoError(t, err)
					results <- data
				}

				go load()
				<-started

				invalidate(requestCache)

				go load()
				time.Sleep(20 * time.Millisecond)
				close(release)

				require.Equal(t, "data1", <-results)
				require.Equal(t, "data1", <-results)
				require.Equal(t, int32(1), calls.Load())

				data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
				require.NoError(t, err)
				require.False(t, created)
				require.Equal(t, "data1", data)
			})
		}
	})

	t.Run("invalidating the key during its load discards the result", func(t *testing.T) {
		t.Parallel()

		for name, invalidate := range map[string]func(*RequestCache[string]){
			"key": func(c *RequestCache[string]) { c.Invalidate(testKey) },
			"url": func(c *RequestCache[string]) { c.InvalidateURL(testKey.URL) },
		} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				requestCache, _ := newTestCache()
				calls := &atomic.Int32{}
				started := make(chan struct{}, 1)
				release := make(chan struct{})

				stale := make(chan string, 1)
				go func() {
					data, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, blockingCallback("stale", nil, started, release, calls))
					assert.NoError(t, err)
					stale <- data
				}()
				<-started

				invalidate(requestCache)

				data, created, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("fresh", calls))
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "fresh", data)

				close(release)
				require.Equal(t, "stale", <-stale)

				data, _, err = requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
				require.NoError(t, err)
				require.Equal(t, "fresh", data)
				require.Equal(t, int32(2), calls.Load())
			})
		}
	})

	t.Run("refresh", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}

		_, _, err := requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, valueCallback("data1", calls))
		require.NoError(t, err)

		data, err := requestCache.Refresh(t.Context(), testKey, DefaultTTL, valueCallback("data2", calls))
		require.NoError(t, err)
		require.Equal(t, "data2", data)

		data, _, err = requestCache.GetOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.Equal(t, "data2", data)
	})
}

// lateStore misses the first lookup, as if another load stored the value right
// after it
type lateStore struct {
	Cache[string]
	missed atomic.Bool
}

func (s *lateStore) get(key string) (string, bool) {
	if s.missed.CompareAndSwap(false, true) {
		return "", false
	}
	return s.Cache.get(key)
}

func TestRequestCacheLookupResult(t *testing.T) {
	t.Parallel()

	t.Run("value stored by another load is a hit", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		store := &lateStore{Cache: NewBasicCache[string](clock.Now)}
		store.set(testKey.String(), "data1", DefaultTTL)
		requestCache := NewRequestCache[string](store)

		data, result, err := requestCache.getOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.Equal(t, lookupHit, result)
		require.Equal(t, "data1", data)
	})

	t.Run("miss, hit and shared", func(t *testing.T) {
		t.Parallel()

		requestCache, _ := newTestCache()
		calls := &atomic.Int32{}
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		create := blockingCallback("data1", nil, started, release, calls)

		results := make(chan lookupResult, 2)
		go func() {
			_, result, err := requestCache.getOrCreate(t.Context(), testKey, DefaultTTL, create)
			assert.NoError(t, err)
			results <- result
		}()
		<-started
		go func() {
			_, result, err := requestCache.getOrCreate(t.Context(), testKey, DefaultTTL, create)
			assert.NoError(t, err)
			results <- result
		}()

		time.Sleep(20 * time.Millisecond)
		close(release)

		require.ElementsMatch(t, []lookupResult{lookupMiss, lookupShared}, []lookupResult{<-results, <-results})

		_, result, err := requestCache.getOrCreate(t.Context(), testKey, DefaultTTL, unreachable(t))
		require.NoError(t, err)
		require.Equal(t, lookupHit, result)
	})
}
