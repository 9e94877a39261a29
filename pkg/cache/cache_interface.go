package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by implementations that need to distinguish a miss from a failure
var ErrCacheMiss = errors.New("cache miss")

// Cache is the contract for the session store and read-through caches.
// Values are JSON encoded by the implementation.
type Cache interface {
	// Get loads key into dest.
	// Returns (found, error):
	// - found = true: hit, dest populated
	// - found = false: miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// GetDelete loads key into dest and removes it atomically (read-once values)
	GetDelete(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with ttl (0 = no expiry)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
}
