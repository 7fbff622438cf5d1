package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is one captured record flattened into a map: "level", "message"
// and every attribute, including those bound with Logger.With.
type LogEntry map[string]any

type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// TestSlogHandler records every log call in memory. Handlers derived through
// WithAttrs or WithGroup write into the same sink as their parent, so a test
// can hand a component slog.New(h) and inspect what its sub-loggers wrote.
type TestSlogHandler struct {
	sink   *logSink
	attrs  []slog.Attr
	prefix string
}

var _ slog.Handler = (*TestSlogHandler)(nil)

// NewTestSlogHandler creates an empty handler that accepts every level.
func NewTestSlogHandler() *TestSlogHandler {
	return &TestSlogHandler{sink: &logSink{}}
}

func (h *TestSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		"level":   r.Level.String(),
		"message": r.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[h.prefix+a.Key] = a.Value.Any()
		return true
	})

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.entries = append(h.sink.entries, entry)
	return nil
}

func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

func (h *TestSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Entries returns a copy of everything captured so far.
func (h *TestSlogHandler) Entries() []LogEntry {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	out := make([]LogEntry, len(h.sink.entries))
	copy(out, h.sink.entries)
	return out
}

// EntriesAtLevel returns the captured entries logged at level.
func (h *TestSlogHandler) EntriesAtLevel(level slog.Level) []LogEntry {
	var out []LogEntry
	for _, e := range h.Entries() {
		if e["level"] == level.String() {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether any captured entry has the given message.
func (h *TestSlogHandler) HasMessage(msg string) bool {
	for _, e := range h.Entries() {
		if e["message"] == msg {
			return true
		}
	}
	return false
}

// Clear drops everything captured so far, for this handler and every
// handler derived from it.
func (h *TestSlogHandler) Clear() {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.entries = nil
}
