package cache

import (
	"context"
	"time"
)

// Store holds encoded values with a time-to-live. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
