package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/obs"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCacheStore,
		NewCache,
	),
)

const (
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"
)

// NewCacheStore picks the backend from CACHE_BACKEND. Redis must answer a ping at startup.
func NewCacheStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case cacheBackendMemory, "":
		return cache.NewMemoryStore(clk), nil
	case cacheBackendRedis:
		store, err := cache.NewRedisStore(cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				if err := store.Ping(ctx); err != nil {
					return fmt.Errorf("failed to reach redis: %w", err)
				}
				slog.Info("redis cache connected")
				return nil
			},
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})
		return store, nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.Cache.Backend)
	}
}

func NewCache(store cache.Store, cfg config.Config, m *obs.Metrics) *cache.Cache {
	return cache.New(store, cfg.Cache.KeyPrefix, cfg.Cache.StoreTimeout, m)
}
