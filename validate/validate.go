// Package validate is the gatekeeper in front of the cache: it checks
// keys, TTL shapes, and value storability, and never mutates cache
// state. Structural problems (bad key, nil batch) surface as errors
// wrapping ErrInvalidArgument; "this value cannot be stored faithfully"
// is an ordinary boolean outcome, not an error.
package validate

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrInvalidArgument is returned (wrapped) for structural problems that
// the caller should have prevented: malformed keys, oversized keys, nil
// batches. Check it with errors.Is.
var ErrInvalidArgument = errors.New("cache: invalid argument")

// MaxKeyLength is the compatibility limit on key length, measured in
// Unicode code points.
const MaxKeyLength = 64

// Key reports whether key is usable as a cache key. Keys are limited to
// 64 code points drawn from [A-Za-z0-9_.]; the reserved characters
// {}()/\@: of the simple-cache contract all fall outside that set.
func Key(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(key) > MaxKeyLength {
		return fmt.Errorf("%w: key %q exceeds %d characters", ErrInvalidArgument, key, MaxKeyLength)
	}
	for _, r := range key {
		if !validKeyRune(r) {
			return fmt.Errorf("%w: key %q contains reserved character %q", ErrInvalidArgument, key, r)
		}
	}
	return nil
}

func validKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.':
		return true
	}
	return false
}

// Keys validates every element of a key list. A nil list is rejected
// the same way a malformed key is.
func Keys(keys []string) error {
	if keys == nil {
		return fmt.Errorf("%w: key list must not be nil", ErrInvalidArgument)
	}
	for _, k := range keys {
		if err := Key(k); err != nil {
			return err
		}
	}
	return nil
}

// TTL reports whether ttl is a recognized expiration shape: a signed
// integer number of seconds or a time.Duration. Everything else —
// including nil — is false: nil signals "no expiration" upstream and is
// the caller's business, not a shape this validator blesses. Callers
// treat unrecognized shapes as "no expiration" rather than an error.
func TTL(ttl any) bool {
	switch ttl.(type) {
	case int, int8, int16, int32, int64:
		return true
	case time.Duration:
		return true
	}
	return false
}

// Batch validates a whole SetMultiple payload before anything is
// written. A nil map or a malformed key is a structural error; a value
// that cannot be stored faithfully makes the batch unacceptable as a
// whole and yields (false, nil).
func Batch(values map[string]any) (bool, error) {
	if values == nil {
		return false, fmt.Errorf("%w: values must not be nil", ErrInvalidArgument)
	}
	for k := range values {
		if err := Key(k); err != nil {
			return false, err
		}
	}
	for _, v := range values {
		if !Data(v) {
			return false, nil
		}
	}
	return true, nil
}
