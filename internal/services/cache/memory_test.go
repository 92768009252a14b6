package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxSizeMB int64) *MemoryCache {
	t.Helper()
	mc := NewMemoryCache(maxSizeMB)
	t.Cleanup(mc.Stop)
	return mc
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)

	_, ok := mc.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, mc.Set(ctx, "key", []byte("value"), time.Minute))
	value, ok := mc.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)
	assert.True(t, mc.Has(ctx, "key"))

	// Replacing keeps the size accounting exact
	require.NoError(t, mc.Set(ctx, "key", []byte("v2"), time.Minute))
	assert.Equal(t, int64(len("key")+len("v2")), mc.Stats().Size)

	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Sets)
	assert.Equal(t, int64(1024*1024), stats.MaxSize)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)

	require.NoError(t, mc.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	assert.False(t, mc.Has(ctx, "short"))
	_, ok := mc.Get(ctx, "short")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Len(), "expired entry is dropped on read")
}

func TestMemoryCache_EvictsOldestFirst(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)
	chunk := make([]byte, 400*1024)

	require.NoError(t, mc.Set(ctx, "first", chunk, time.Hour))
	require.NoError(t, mc.Set(ctx, "second", chunk, time.Hour))
	require.NoError(t, mc.Set(ctx, "third", chunk, time.Hour))

	assert.False(t, mc.Has(ctx, "first"))
	assert.True(t, mc.Has(ctx, "second"))
	assert.True(t, mc.Has(ctx, "third"))
	assert.Equal(t, int64(1), mc.Stats().Evictions)
	assert.LessOrEqual(t, mc.Stats().Size, int64(1024*1024))
}

func TestMemoryCache_DropsOversizedValues(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)

	require.NoError(t, mc.Set(ctx, "small", []byte("ok"), time.Hour))
	require.NoError(t, mc.Set(ctx, "huge", make([]byte, 2*1024*1024), time.Hour))

	assert.False(t, mc.Has(ctx, "huge"))
	assert.True(t, mc.Has(ctx, "small"), "existing entries survive an oversized set")
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 0)

	for _, key := range []string{"wf:a:1", "wf:a:2", "wf:b:1", "meta:a"} {
		require.NoError(t, mc.Set(ctx, key, []byte(key), 0))
	}

	assert.Equal(t, 2, mc.DeletePrefix(ctx, "wf:a:"))
	assert.False(t, mc.Has(ctx, "wf:a:1"))
	assert.True(t, mc.Has(ctx, "wf:b:1"))

	require.NoError(t, mc.Delete(ctx, "meta:a"))
	require.NoError(t, mc.Delete(ctx, "never-set"))
	assert.Equal(t, 1, mc.Len())

	require.NoError(t, mc.Clear(ctx))
	assert.Equal(t, 0, mc.Len())
	assert.Equal(t, int64(0), mc.Stats().Size)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%8)
			_ = mc.Set(ctx, key, []byte("value"), time.Minute)
			mc.Get(ctx, key)
			mc.Has(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, mc.Len())
	assert.Equal(t, int64(8*(len("key-0")+len("value"))), mc.Stats().Size)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	mc := NewMemoryCache(1)
	mc.Stop()
	mc.Stop()
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	mc := newTestCache(t, 1)

	type payload struct {
		Peaks []float64 `json:"peaks"`
		Name  string    `json:"name"`
	}

	in := payload{Peaks: []float64{0.25, 1}, Name: "clip"}
	require.NoError(t, SetJSON(ctx, mc, "p", in, time.Minute))

	var out payload
	assert.True(t, GetJSON(ctx, mc, "p", &out))
	assert.Equal(t, in, out)

	assert.False(t, GetJSON(ctx, mc, "absent", &out))

	require.NoError(t, mc.Set(ctx, "garbage", []byte("{not json"), time.Minute))
	assert.False(t, GetJSON(ctx, mc, "garbage", &out))

	assert.Error(t, SetJSON(ctx, mc, "bad", make(chan int), time.Minute))
}
