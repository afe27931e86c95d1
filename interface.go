package cache

import orderedmap "github.com/wk8/go-ordered-map/v2"

/*
Contract is the standardized simple-cache surface this package is a
drop-in for. Both Cache (single owner) and SyncCache (shared) satisfy
it.

Two failure channels are kept deliberately separate across the whole
surface:

  - Structural problems — malformed keys, nil batches — come back as an
    error wrapping validate.ErrInvalidArgument, raised before any state
    is touched.
  - "Cannot faithfully store this value" is an ordinary boolean false
    from Set/SetMultiple, never an error. Callers are expected to check
    it the way they check any other result.

The TTL argument on Set/SetMultiple is nil (never expire), a signed
integer number of seconds, or a time.Duration. Unrecognized shapes
silently degrade to "never expire".
*/
type Contract interface {

	// Get returns the live value for key, or def when absent or expired.
	Get(key string, def any) (any, error)

	// Set writes or replaces the entry for key. A TTL that resolves to a
	// moment at or before now stores nothing and acts as a delete.
	Set(key string, value any, ttl any) (bool, error)

	// Delete removes key. It is idempotent: deleting an absent key still
	// reports true.
	Delete(key string) (bool, error)

	// Clear wipes every entry unconditionally.
	Clear() bool

	// GetMultiple is the per-key equivalent of Get. The result preserves
	// the input key order.
	GetMultiple(keys []string, def any) (*orderedmap.OrderedMap[string, any], error)

	// SetMultiple writes every pair with one shared TTL. The whole batch
	// is validated before anything is written; an unacceptable value
	// anywhere makes the call a no-op returning false.
	SetMultiple(values map[string]any, ttl any) (bool, error)

	// DeleteMultiple deletes each key, reporting the AND across the
	// batch. Partial deletion may have happened even when it reports
	// false.
	DeleteMultiple(keys []string) (bool, error)

	// Has is an existence check with the same lazy-expiry side effect
	// as Get.
	Has(key string) (bool, error)

	// ItemsCount counts entries physically present, including ones that
	// are logically expired but not yet swept. Run GC first for an exact
	// live count.
	ItemsCount() int

	// GC proactively removes every currently-expired entry regardless of
	// access pattern.
	GC()
}
