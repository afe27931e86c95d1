package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rkandari/bucket-cache/types"
	"github.com/rkandari/bucket-cache/validate"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("cache: no loader configured")

/*
SyncCache puts a Cache behind the mutual-exclusion boundary the bare
structure requires for shared use, and adds read-through loading.

Reads take the write lock too: even Get can mutate, because touching an
expired entry sweeps its timestamp bucket. Only ItemsCount gets away
with a read lock.
*/
type SyncCache struct {
	mu    sync.RWMutex
	inner *Cache

	loader  types.Loader
	loadTTL time.Duration

	// singleflight collapses concurrent loads of the same missing key
	// into one Loader call; every waiter receives the same result.
	sf singleflight.Group
}

var _ Contract = (*SyncCache)(nil)

// SyncOption configures a SyncCache.
type SyncOption func(*SyncCache)

// WithLoader installs the backing source consulted by GetOrLoad.
func WithLoader(l types.Loader) SyncOption {
	return func(c *SyncCache) { c.loader = l }
}

// WithLoadTTL sets the TTL applied to values stored by GetOrLoad. Zero
// means loaded values never expire.
func WithLoadTTL(ttl time.Duration) SyncOption {
	return func(c *SyncCache) { c.loadTTL = ttl }
}

// NewSync wraps inner for shared use. A nil inner gets a fresh Cache.
func NewSync(inner *Cache, opts ...SyncOption) *SyncCache {
	if inner == nil {
		inner = New()
	}
	c := &SyncCache{inner: inner}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SyncCache) Get(key string, def any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Get(key, def)
}

func (c *SyncCache) Set(key string, value any, ttl any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Set(key, value, ttl)
}

func (c *SyncCache) Delete(key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Delete(key)
}

func (c *SyncCache) Clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Clear()
}

func (c *SyncCache) GetMultiple(keys []string, def any) (*orderedmap.OrderedMap[string, any], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.GetMultiple(keys, def)
}

func (c *SyncCache) SetMultiple(values map[string]any, ttl any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.SetMultiple(values, ttl)
}

func (c *SyncCache) DeleteMultiple(keys []string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.DeleteMultiple(keys)
}

func (c *SyncCache) Has(key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Has(key)
}

func (c *SyncCache) ItemsCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inner.ItemsCount()
}

func (c *SyncCache) GC() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.GC()
}

// GetOrLoad returns the cached value for key, asking the configured
// Loader on a miss and caching what it returns with the load TTL. A
// Loader that returns a nil value signals "not found"; nothing is
// cached and nil comes back to the caller.
func (c *SyncCache) GetOrLoad(ctx context.Context, key string) (any, error) {
	if err := validate.Key(key); err != nil {
		return nil, err
	}
	if c.loader == nil {
		return nil, ErrNoLoader
	}

	c.mu.Lock()
	ent, ok, expired := c.inner.store.Get(key)
	if expired {
		c.inner.metrics.Expire()
	}
	if ok {
		c.inner.metrics.Hit()
		v := ent.Value
		c.mu.Unlock()
		return v, nil
	}
	c.inner.metrics.Miss()
	c.mu.Unlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		return c.loader.Load(ctx, key)
	})
	if err != nil || v == nil {
		return nil, err
	}

	var ttl any
	if c.loadTTL > 0 {
		ttl = c.loadTTL
	}
	if _, err := c.Set(key, v, ttl); err != nil {
		return nil, err
	}
	return v, nil
}
