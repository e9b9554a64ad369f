package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. Runs with --no-cache, and runs whose cache
// directory or Redis server is unavailable, fall back to it.
type NullCache struct{}

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)

// NewNullCache returns a cache on which every Get misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

// Clear succeeds trivially so "valvepath cache clear" works without a backend.
func (NullCache) Clear(context.Context) error { return nil }

func (NullCache) Close() error { return nil }
