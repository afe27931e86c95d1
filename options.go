package cache

import (
	"time"

	"github.com/rkandari/bucket-cache/types"
)

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithMetrics installs a metrics sink. The default discards every
// event.
func WithMetrics(m types.Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock overrides the time source used for TTL anchoring and expiry
// checks. Tests use this to make expiration deterministic.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}
