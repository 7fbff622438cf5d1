// Package testutils provides helpers shared by tests across packages, chiefly
// a memory-backed slog handler for asserting on log output.
package testutils
