// Package cache provides a small TTL key-value abstraction with in-memory and
// Valkey-backed implementations. Values are stored as JSON.
package cache

import (
	"context"
	"time"
)

type TTLCache interface {
	// Get unmarshals the cached value into dest and reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
