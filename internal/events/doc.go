// Package events provides types and interfaces for announcing deck changes.
//
// The state store emits one event per operation; handlers such as the
// persistence saver subscribe without the store knowing about them. This keeps
// the store free of I/O and lets diagnostics observe every action.
//
// The primary components are:
// - StateEvent: Describes one deck operation and its payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - InMemoryEventEmitter: Delivers events to handlers subscribed by type
package events
