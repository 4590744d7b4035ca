package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"ski-stays/internal/pkg/obs"

	"golang.org/x/sync/singleflight"
)

// Cache wraps a Store with miss coalescing. Values are stored JSON-encoded.
type Cache struct {
	store        Store
	prefix       string
	storeTimeout time.Duration
	group        singleflight.Group
	metrics      *obs.Metrics
}

func New(store Store, prefix string, storeTimeout time.Duration, m *obs.Metrics) *Cache {
	return &Cache{store: store, prefix: prefix, storeTimeout: storeTimeout, metrics: m}
}

// Key joins a namespace with a digest of the given parts.
func Key(namespace string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}

// WithCache returns the cached value for key or computes it with producer.
// Concurrent misses on one key share a single producer call. The shared call ignores
// caller cancellation; each caller stops waiting when its own ctx is done. Producer errors are
// returned as-is and never stored. A failing store degrades to calling producer.
func WithCache[T any](
	ctx context.Context,
	c *Cache,
	namespace, key string,
	ttl time.Duration,
	producer func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	fullKey := c.prefix + key

	if v, ok := lookup[T](ctx, c, fullKey); ok {
		c.metrics.IncCacheHit(namespace)
		return v, nil
	}

	ch := c.group.DoChan(fullKey, func() (any, error) {
		shared := context.WithoutCancel(ctx)

		// a caller that lost the race may find the value already stored
		if v, ok := lookup[T](shared, c, fullKey); ok {
			c.metrics.IncCacheHit(namespace)
			return v, nil
		}
		c.metrics.IncCacheMiss(namespace)

		v, err := producer(shared)
		if err != nil {
			return v, err
		}
		c.save(shared, fullKey, v, ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Put stores v under key unconditionally. Store failures are logged and dropped.
func Put[T any](ctx context.Context, c *Cache, key string, v T, ttl time.Duration) {
	c.save(ctx, c.prefix+key, v, ttl)
}

// Get returns the value stored under key, if any.
func Get[T any](ctx context.Context, c *Cache, namespace, key string) (T, bool) {
	v, ok := lookup[T](ctx, c, c.prefix+key)
	if ok {
		c.metrics.IncCacheHit(namespace)
	} else {
		c.metrics.IncCacheMiss(namespace)
	}
	return v, ok
}

func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T

	sctx, cancel := c.storeContext(ctx)
	defer cancel()

	b, ok, err := c.store.Get(sctx, key)
	if err != nil {
		slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		slog.WarnContext(ctx, "cache entry undecodable", "key", key, "error", err)
		return v, false
	}
	return v, true
}

func (c *Cache) save(ctx context.Context, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "cache value unencodable", "key", key, "error", err)
		return
	}

	sctx, cancel := c.storeContext(ctx)
	defer cancel()

	if err := c.store.Set(sctx, key, b, ttl); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (c *Cache) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.storeTimeout)
}
