// Package sqlite provides a durable store.KVStore backed by a single SQLite
// file. It uses modernc.org/sqlite, a pure-Go driver, so the binary builds
// without cgo. The schema is created by embedded goose migrations on open.
package sqlite
