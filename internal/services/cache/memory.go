package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL applies when Set is called with a non-positive ttl
const DefaultTTL = 30 * time.Minute

// MemoryCache implements an in-memory cache bounded by total key+value bytes
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]*cacheItem
	maxSize     int64 // bytes, 0 for unbounded
	currentSize int64
	seq         uint64 // insertion counter, guarded by mu
	stats       Stats
	stopCh      chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
	seq    uint64
	size   int64
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(maxSizeMB int64) *MemoryCache {
	mc := &MemoryCache{
		items:   make(map[string]*cacheItem),
		maxSize: maxSizeMB * 1024 * 1024,
		stopCh:  make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.cleanupExpired(time.Minute)

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	if time.Now().After(item.expiry) {
		_ = mc.Delete(ctx, key)
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	atomic.AddInt64(&mc.stats.Hits, 1)
	return item.value, true
}

// Set stores a value in the cache with a TTL. Values larger than the whole cache are dropped.
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	size := int64(len(key) + len(value))
	if mc.maxSize > 0 && size > mc.maxSize {
		return nil
	}

	item := &cacheItem{
		value:  value,
		expiry: time.Now().Add(ttl),
		size:   size,
	}

	mc.mu.Lock()
	mc.seq++
	item.seq = mc.seq
	if oldItem, exists := mc.items[key]; exists {
		delete(mc.items, key)
		atomic.AddInt64(&mc.currentSize, -oldItem.size)
	}
	mc.makeRoomLocked(size)
	mc.items[key] = item
	atomic.AddInt64(&mc.currentSize, size)
	mc.mu.Unlock()

	atomic.AddInt64(&mc.stats.Sets, 1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	if item, exists := mc.items[key]; exists {
		delete(mc.items, key)
		atomic.AddInt64(&mc.currentSize, -item.size)
		atomic.AddInt64(&mc.stats.Deletes, 1)
	}
	mc.mu.Unlock()
	return nil
}

// DeletePrefix removes every key starting with prefix and returns how many were removed
func (mc *MemoryCache) DeletePrefix(ctx context.Context, prefix string) int {
	removed := 0
	mc.mu.Lock()
	for key, item := range mc.items {
		if strings.HasPrefix(key, prefix) {
			delete(mc.items, key)
			atomic.AddInt64(&mc.currentSize, -item.size)
			atomic.AddInt64(&mc.stats.Deletes, 1)
			removed++
		}
	}
	mc.mu.Unlock()
	return removed
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]*cacheItem)
	atomic.StoreInt64(&mc.currentSize, 0)
	mc.mu.Unlock()
	return nil
}

// Has checks if a key exists in the cache
func (mc *MemoryCache) Has(ctx context.Context, key string) bool {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	return exists && time.Now().Before(item.expiry)
}

// Len returns the number of stored entries, expired or not
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&mc.stats.Hits),
		Misses:    atomic.LoadInt64(&mc.stats.Misses),
		Sets:      atomic.LoadInt64(&mc.stats.Sets),
		Deletes:   atomic.LoadInt64(&mc.stats.Deletes),
		Evictions: atomic.LoadInt64(&mc.stats.Evictions),
		Size:      atomic.LoadInt64(&mc.currentSize),
		MaxSize:   mc.maxSize,
	}
}

// Stop gracefully shuts down the cache. It is safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() {
		close(mc.stopCh)
	})
	mc.wg.Wait()
}

// cleanupExpired removes expired items periodically
func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

// removeExpiredLocked removes all expired items; mc.mu must be held
func (mc *MemoryCache) removeExpiredLocked() {
	now := time.Now()
	for key, item := range mc.items {
		if now.After(item.expiry) {
			delete(mc.items, key)
			atomic.AddInt64(&mc.currentSize, -item.size)
			atomic.AddInt64(&mc.stats.Evictions, 1)
		}
	}
}

// makeRoomLocked evicts expired items, then the oldest items, until sizeNeeded fits; mc.mu must be held
func (mc *MemoryCache) makeRoomLocked(sizeNeeded int64) {
	if mc.maxSize <= 0 || atomic.LoadInt64(&mc.currentSize)+sizeNeeded <= mc.maxSize {
		return
	}

	mc.removeExpiredLocked()
	if atomic.LoadInt64(&mc.currentSize)+sizeNeeded <= mc.maxSize {
		return
	}

	keys := make([]string, 0, len(mc.items))
	for key := range mc.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return mc.items[keys[i]].seq < mc.items[keys[j]].seq
	})

	for _, key := range keys {
		if atomic.LoadInt64(&mc.currentSize)+sizeNeeded <= mc.maxSize {
			break
		}
		item := mc.items[key]
		delete(mc.items, key)
		atomic.AddInt64(&mc.currentSize, -item.size)
		atomic.AddInt64(&mc.stats.Evictions, 1)
	}
}
