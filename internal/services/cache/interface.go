// Package cache memoizes encoded engine results in process.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key starting with prefix and reports how many went.
	// Keys embed the file path first, so this drops every version of one file.
	DeletePrefix(ctx context.Context, prefix string) int
}

// Stats counts cache traffic since creation
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Deletes   int64
	Evictions int64
	Size      int64 // Bytes currently held, keys included
	MaxSize   int64 // 0 when unbounded
}

// StatsProvider is implemented by caches that track Stats
type StatsProvider interface {
	Stats() Stats
}

// GetJSON decodes a cached value into dst. A missing key or an undecodable value is a miss.
func GetJSON(ctx context.Context, c Cache, key string, dst any) bool {
	data, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes value and stores it under key
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
