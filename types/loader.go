package types

import "context"

// Loader is the contract between the cache and a backing source.
//
// Load is called on a cache miss: the key was not found in memory, so
// the cache asks the Loader to fetch it (a database call, an API call,
// or any other external lookup). The cache stores the result and
// returns it to the caller.
type Loader interface {
	Load(ctx context.Context, key string) (any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (any, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}
