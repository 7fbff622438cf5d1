package store

import "context"

// KVStore is a flat string-keyed store. Values are opaque blobs; a Set fully
// overwrites any previous value under the same key.
type KVStore interface {
	// Get returns the value under key. found is false when nothing has been
	// stored there; that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}
