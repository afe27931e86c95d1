package cache_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/rkandari/bucket-cache"
	"github.com/rkandari/bucket-cache/types"
)

func TestSyncCacheBasicOperations(t *testing.T) {
	c := cache.NewSync(nil)

	ok, err := c.Set("k", "v", nil)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := c.Get("k", nil)
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	has, err := c.Has("k")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 1, c.ItemsCount())

	ok, err = c.Delete("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.Clear())
}

func TestSyncCacheConcurrentAccess(t *testing.T) {
	c := cache.NewSync(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", id)
			if _, err := c.Set(key, id, 60); err != nil {
				t.Errorf("set %s: %v", key, err)
			}
			if _, err := c.Get(key, nil); err != nil {
				t.Errorf("get %s: %v", key, err)
			}
			if _, err := c.DeleteMultiple([]string{key}); err != nil {
				t.Errorf("delete %s: %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, c.ItemsCount())
}

func TestGetOrLoadCachesResult(t *testing.T) {
	var calls atomic.Int64
	loader := types.LoaderFunc(func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		return "loaded." + key, nil
	})
	c := cache.NewSync(nil, cache.WithLoader(loader))

	ctx := context.Background()
	v, err := c.GetOrLoad(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "loaded.k", v)

	// Second call is served from memory.
	v, err = c.GetOrLoad(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "loaded.k", v)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	loader := types.LoaderFunc(func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	})
	c := cache.NewSync(nil, cache.WithLoader(loader))

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(ctx, "k")
			if err != nil {
				t.Errorf("GetOrLoad: %v", err)
				return
			}
			if v != "value" {
				t.Errorf("expected value, got %v", v)
			}
		}()
	}

	// Give the goroutines time to pile up on the same key, then let the
	// single in-flight load finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load(), "concurrent loads should collapse")
}

func TestGetOrLoadNilValueNotCached(t *testing.T) {
	loader := types.LoaderFunc(func(ctx context.Context, key string) (any, error) {
		return nil, nil
	})
	c := cache.NewSync(nil, cache.WithLoader(loader))

	v, err := c.GetOrLoad(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, c.ItemsCount())
}

func TestGetOrLoadWithoutLoader(t *testing.T) {
	c := cache.NewSync(nil)

	_, err := c.GetOrLoad(context.Background(), "k")
	assert.ErrorIs(t, err, cache.ErrNoLoader)
}

func TestGetOrLoadAppliesLoadTTL(t *testing.T) {
	clk := newTestClock()
	inner := cache.New(cache.WithClock(clk.Now))

	var calls atomic.Int64
	loader := types.LoaderFunc(func(ctx context.Context, key string) (any, error) {
		calls.Add(1)
		return calls.Load(), nil
	})
	c := cache.NewSync(inner, cache.WithLoader(loader), cache.WithLoadTTL(30*time.Second))

	ctx := context.Background()
	v, err := c.GetOrLoad(ctx, "k")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	// Past the load TTL the entry is stale and gets reloaded.
	clk.Advance(31 * time.Second)
	v, err = c.GetOrLoad(ctx, "k")
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)
}
