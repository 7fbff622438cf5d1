package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Study   StudyConfig   `mapstructure:"study" validate:"required"`
}

// StorageConfig controls where the deck is persisted.
type StorageConfig struct {
	// Path is the SQLite database file. Ignored when Ephemeral is set.
	Path string `mapstructure:"path" validate:"required_unless=Ephemeral true"`
	// Key is the KV key the whole deck is stored under.
	Key string `mapstructure:"key" validate:"required"`
	// Ephemeral keeps the deck in memory only.
	Ephemeral bool `mapstructure:"ephemeral"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// File receives log output when set; otherwise logs go to stderr.
	File string `mapstructure:"file"`
}

// StudyConfig tunes the study screen.
type StudyConfig struct {
	// AdvanceDelay is how long the card stays face down before the next one
	// is shown.
	AdvanceDelay time.Duration `mapstructure:"advance_delay" validate:"gte=0,lte=5s"`
}
