/*
Package cache implements an in-process key-value cache with per-entry
TTL expiration, following the widely adopted simple-cache contract:
Get/Set/Delete, bulk variants, an existence check, and manual garbage
collection.

The engine pairs a primary key→value table with a secondary TTL index
that groups keys by their exact expiration timestamp. Expired entries
are reclaimed lazily when touched — and discovering one stale key
reclaims its entire timestamp bucket — or proactively via GC.

Cache assumes exclusive single-owner access. SyncCache wraps it for
shared use and adds read-through loading.
*/
package cache

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rkandari/bucket-cache/store"
	"github.com/rkandari/bucket-cache/types"
	"github.com/rkandari/bucket-cache/validate"
)

// Cache is the single-owner implementation of the Contract. It is not
// safe for concurrent use; see SyncCache.
type Cache struct {
	store   *store.Store
	metrics types.Metrics
	clock   func() time.Time
}

var _ Contract = (*Cache)(nil)

// New creates a cache instance with independent storage.
func New(opts ...Option) *Cache {
	c := &Cache{
		metrics: types.NoopMetrics{},
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = store.New(c.clock)
	return c
}

// Get returns the live value for key, or def when the key is absent or
// expired. Looking up an expired key removes its whole timestamp bucket
// as a side effect.
func (c *Cache) Get(key string, def any) (any, error) {
	if err := validate.Key(key); err != nil {
		return nil, err
	}
	ent, ok, expired := c.store.Get(key)
	if expired {
		c.metrics.Expire()
	}
	if !ok {
		c.metrics.Miss()
		return def, nil
	}
	c.metrics.Hit()
	return ent.Value, nil
}

// Set writes or fully replaces the entry for key. It reports false,
// with no state change, when the value cannot be stored faithfully. A
// TTL resolving to a moment at or before now stores nothing and acts as
// an immediate delete; that is still a successful write.
func (c *Cache) Set(key string, value any, ttl any) (bool, error) {
	if err := validate.Key(key); err != nil {
		return false, err
	}
	if !validate.Data(value) {
		return false, nil
	}
	expiresAt := c.normalizeTTL(ttl)
	if expiresAt != 0 && expiresAt <= c.clock().Unix() {
		// Already expired on arrival: the delete's defensive result is
		// the only thing that can go wrong here.
		return c.store.Delete(key), nil
	}
	c.store.Put(key, value, expiresAt)
	return true, nil
}

// Delete removes key from the table and the TTL index. Idempotent:
// deleting an absent key reports true. A false result means the engine
// found its own index inconsistent, which correct invariants rule out.
func (c *Cache) Delete(key string) (bool, error) {
	if err := validate.Key(key); err != nil {
		return false, err
	}
	return c.store.Delete(key), nil
}

// Clear empties the table and the TTL index unconditionally.
func (c *Cache) Clear() bool {
	c.store.Clear()
	return true
}

// GetMultiple looks up each key the way Get does, preserving input key
// order in the result.
func (c *Cache) GetMultiple(keys []string, def any) (*orderedmap.OrderedMap[string, any], error) {
	if err := validate.Keys(keys); err != nil {
		return nil, err
	}
	out := orderedmap.New[string, any](len(keys))
	for _, k := range keys {
		ent, ok, expired := c.store.Get(k)
		if expired {
			c.metrics.Expire()
		}
		if !ok {
			c.metrics.Miss()
			out.Set(k, def)
			continue
		}
		c.metrics.Hit()
		out.Set(k, ent.Value)
	}
	return out, nil
}

// SetMultiple writes every pair with the same normalized TTL, as if by
// repeated Set. The batch is validated as a whole first: if any key is
// malformed that is an error, and if any value is unstorable nothing is
// written and the call reports false.
func (c *Cache) SetMultiple(values map[string]any, ttl any) (bool, error) {
	ok, err := validate.Batch(values)
	if err != nil || !ok {
		return false, err
	}
	expiresAt := c.normalizeTTL(ttl)
	if expiresAt != 0 && expiresAt <= c.clock().Unix() {
		all := true
		for k := range values {
			if !c.store.Delete(k) {
				all = false
			}
		}
		return all, nil
	}
	for k, v := range values {
		c.store.Put(k, v, expiresAt)
	}
	return true, nil
}

// DeleteMultiple deletes each key and reports the logical AND across
// the batch. Keys already deleted stay deleted even when the aggregate
// result is false.
func (c *Cache) DeleteMultiple(keys []string) (bool, error) {
	if err := validate.Keys(keys); err != nil {
		return false, err
	}
	all := true
	for _, k := range keys {
		if !c.store.Delete(k) {
			all = false
		}
	}
	return all, nil
}

// Has reports whether key holds a live value, with the same lazy-expiry
// side effect as Get.
func (c *Cache) Has(key string) (bool, error) {
	if err := validate.Key(key); err != nil {
		return false, err
	}
	_, ok, expired := c.store.Get(key)
	if expired {
		c.metrics.Expire()
	}
	if ok {
		c.metrics.Hit()
	} else {
		c.metrics.Miss()
	}
	return ok, nil
}

// ItemsCount counts entries physically present, including logically
// expired ones that have not been swept yet.
func (c *Cache) ItemsCount() int {
	return c.store.Len()
}

// GC removes every entry whose expiration is at or before now by
// scanning the distinct timestamps in the TTL index.
func (c *Cache) GC() {
	c.store.Sweep()
	c.metrics.Sweep()
}

// normalizeTTL turns a TTL argument into an absolute Unix timestamp
// anchored to the current time, with zero meaning "never expires".
// Unrecognized TTL shapes also normalize to zero: an odd TTL type is
// deliberately not an error, matching the permissive-degradation policy
// of the contract this cache substitutes for.
func (c *Cache) normalizeTTL(ttl any) int64 {
	if ttl == nil || !validate.TTL(ttl) {
		return 0
	}
	now := c.clock()
	switch v := ttl.(type) {
	case int:
		return now.Unix() + int64(v)
	case int8:
		return now.Unix() + int64(v)
	case int16:
		return now.Unix() + int64(v)
	case int32:
		return now.Unix() + int64(v)
	case int64:
		return now.Unix() + v
	case time.Duration:
		return now.Add(v).Unix()
	}
	return 0
}
