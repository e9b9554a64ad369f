// Package cache stores intermediate and final solve results.
//
// A [Cache] is a plain byte store with TTLs. Three backends are provided:
//
//   - [FileCache] for the CLI, under the user's cache directory
//   - [RedisCache] for shared deployments of the HTTP server
//   - [NullCache] when caching is disabled
//
// Keys are built by a [Keyer] so the CLI and server agree on them. Parsing
// and scoring are deterministic, so a cached value is always exact.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiration.
//
// Get returns (nil, false, nil) on a miss. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs per cached item.
const (
	TTLNetwork = 7 * 24 * time.Hour
	TTLResult  = 7 * 24 * time.Hour
)

// DefaultDir returns the default on-disk cache location,
// $XDG_CACHE_HOME/valvepath (or the platform equivalent).
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "valvepath"), nil
}

// Open returns a RedisCache when redisURL is set and a FileCache in dir
// otherwise. An empty dir means [DefaultDir].
func Open(ctx context.Context, dir, redisURL string) (Cache, error) {
	if redisURL != "" {
		c, err := NewRedisCache(ctx, redisURL, "")
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}
