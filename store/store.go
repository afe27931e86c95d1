// Package store implements the storage engine behind the cache: a
// primary key→value table paired with a secondary TTL index grouping
// keys by their exact expiration timestamp. The index is what makes
// expiry cheap: reclaiming a timestamp removes a whole bucket of keys
// at once instead of scanning the table.
package store

import (
	"time"

	"github.com/rkandari/bucket-cache/types"
)

// Store owns the primary table and the TTL index.
//
// It assumes a single owner: no locking, no atomicity guarantees across
// concurrent callers. A caller that needs to share it must wrap it
// behind an external mutual-exclusion boundary (see cache.SyncCache).
type Store struct {
	items map[string]*types.Entry

	// ttlIndex maps an absolute expiration timestamp (Unix seconds) to
	// the set of keys expiring at that exact instant. A bucket exists
	// iff at least one live key references it.
	ttlIndex map[int64]map[string]struct{}

	clock func() time.Time
}

// New creates an empty store. clock is the time source for expiry
// decisions; pass nil for wall-clock time.
func New(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		items:    make(map[string]*types.Entry),
		ttlIndex: make(map[int64]map[string]struct{}),
		clock:    clock,
	}
}

func (s *Store) now() int64 {
	return s.clock().Unix()
}

// Put writes or fully replaces the entry for key. Replacing an entry
// relocates its TTL-index membership. expiresAt == 0 means the entry
// never expires and is kept out of the index entirely.
func (s *Store) Put(key string, value any, expiresAt int64) {
	if old, ok := s.items[key]; ok {
		s.detachIndex(old)
	}
	s.items[key] = &types.Entry{Key: key, Value: value, ExpiresAt: expiresAt}
	if expiresAt == 0 {
		return
	}
	bucket, ok := s.ttlIndex[expiresAt]
	if !ok {
		bucket = make(map[string]struct{})
		s.ttlIndex[expiresAt] = bucket
	}
	bucket[key] = struct{}{}
}

// Get returns the live entry for key. A hit on a stale entry sweeps the
// entire bucket sharing its expiration timestamp — once one key in a
// bucket is found stale, every key there is stale too — and reports
// expired so the caller can account for it.
func (s *Store) Get(key string) (ent *types.Entry, ok bool, expired bool) {
	ent, ok = s.items[key]
	if !ok {
		return nil, false, false
	}
	if ent.Expired(s.now()) {
		s.sweepBucket(ent.ExpiresAt)
		return nil, false, true
	}
	return ent, true, false
}

// Delete detaches key from both the table and the TTL index. Deleting
// an absent key is a no-op success. The false return is defensive: it
// reports a table/index inconsistency that correct invariants rule out.
func (s *Store) Delete(key string) bool {
	ent, ok := s.items[key]
	if !ok {
		return true
	}
	delete(s.items, key)
	if ent.ExpiresAt == 0 {
		return true
	}
	bucket, ok := s.ttlIndex[ent.ExpiresAt]
	if !ok {
		return false
	}
	if _, member := bucket[key]; !member {
		return false
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.ttlIndex, ent.ExpiresAt)
	}
	return true
}

// Clear drops both structures unconditionally.
func (s *Store) Clear() {
	s.items = make(map[string]*types.Entry)
	s.ttlIndex = make(map[int64]map[string]struct{})
}

// Len counts entries physically present, stale ones included. Callers
// needing an exact live count should Sweep first.
func (s *Store) Len() int {
	return len(s.items)
}

// Sweep scans every distinct timestamp in the TTL index and reclaims
// all buckets at or before the current time. It returns the number of
// entries removed.
func (s *Store) Sweep() int {
	now := s.now()
	removed := 0
	for ts := range s.ttlIndex {
		if ts <= now {
			removed += s.sweepBucket(ts)
		}
	}
	return removed
}

// sweepBucket removes every key bucketed at ts from the primary table
// and drops the bucket itself. All keys in a bucket share the identical
// expiration instant by construction, so the whole bucket goes in one
// pass.
func (s *Store) sweepBucket(ts int64) int {
	bucket, ok := s.ttlIndex[ts]
	if !ok {
		return 0
	}
	for key := range bucket {
		delete(s.items, key)
	}
	delete(s.ttlIndex, ts)
	return len(bucket)
}

func (s *Store) detachIndex(ent *types.Entry) {
	if ent.ExpiresAt == 0 {
		return
	}
	bucket, ok := s.ttlIndex[ent.ExpiresAt]
	if !ok {
		return
	}
	delete(bucket, ent.Key)
	if len(bucket) == 0 {
		delete(s.ttlIndex, ent.ExpiresAt)
	}
}
