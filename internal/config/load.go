package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. FLASHDECK_STORAGE_PATH.
const EnvPrefix = "FLASHDECK"

// DefaultStorageKey is the key the deck has always been saved under.
const DefaultStorageKey = "flashcard_groups_v5_data"

// Default values
const (
	DefaultLogLevel     = "info"
	DefaultAdvanceDelay = 100 * time.Millisecond
	appDirName          = "flashdeck"
	dbFileName          = "flashdeck.db"
)

type loadOptions struct {
	configFile string
	overrides  map[string]any
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads configuration from path instead of searching the
// default locations. A missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithOverride sets key (dotted, e.g. "storage.path") with the highest
// precedence. Used for command-line flags.
func WithOverride(key string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[key] = value
	}
}

// Load configuration from defaults, an optional config file, and environment
// variables, in increasing order of precedence, then applies overrides.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()

	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.ephemeral", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("study.advance_delay", DefaultAdvanceDelay)

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName(appDirName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appDirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range o.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return dbFileName
	}
	return filepath.Join(dir, appDirName, dbFileName)
}
