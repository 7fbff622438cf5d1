// Package service contains the deck's use cases. StateStore owns the
// in-memory application state and is the only way to change it: every
// operation validates its input, mutates atomically, and announces the change
// through an events.EventEmitter.
//
// Key components:
//
// 1. StateStore:
//   - Group and card creation with monotonic ID allocation
//   - Group deletion and learning feedback
//   - Deep-copied read access for presentation code
//
// 2. PersistHandler:
//   - Subscribed to the mutating event types; resaves the full state after
//     each one, one save at a time
//   - Save failures are logged and never reach the caller that mutated
//
// The service package depends on domain entities and the persistence adapter,
// never on a specific storage backend.
package service
