// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, an optional YAML file, environment
// variables, and command-line overrides). It provides type-safe access to
// settings while keeping configuration details out of the deck logic.
package config
