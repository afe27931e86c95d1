package types

// Entry is one cached item.
//
// ExpiresAt is an absolute Unix timestamp in seconds. Zero means the
// entry never expires. Every entry with a non-zero ExpiresAt is also
// registered in the store's TTL index under exactly that timestamp.
type Entry struct {
	Key       string
	Value     any
	ExpiresAt int64
}

// Expired reports whether the entry is logically dead at the given Unix
// time. An entry whose ExpiresAt is at or before now must be treated as
// absent by every read path, even while still physically present.
func (e *Entry) Expired(now int64) bool {
	return e.ExpiresAt != 0 && e.ExpiresAt <= now
}
