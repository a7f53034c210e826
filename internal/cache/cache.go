// Package cache defines the byte-level cache used for tracking results.
package cache

import (
	"context"
	"time"
)

// BytesCache is a best-effort byte cache with per-key TTL. Implementations
// must treat a missing key as (nil, false, nil), not an error.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
