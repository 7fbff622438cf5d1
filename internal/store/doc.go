// Package store defines the string-keyed persistence boundary the deck is
// saved through, together with the errors shared by every backend. The
// in-memory MemoryKV lives here; durable backends live under
// internal/platform.
package store
