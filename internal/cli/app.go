package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/persistence"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/platform/sqlite"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

// app is one opened deck with everything needed to serve a command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	adapter *persistence.Adapter
	closers []io.Closer
}

// openApp loads configuration, sets up logging and opens the KV backend.
// Flags override the config file and environment only when set.
func openApp(ctx context.Context, cmd *cobra.Command, opts *RootOptions) (*app, error) {
	var loadOpts []config.Option
	if opts.ConfigFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.ConfigFile))
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		loadOpts = append(loadOpts, config.WithOverride("storage.path", opts.DBPath))
	}
	if flags.Changed("ephemeral") {
		loadOpts = append(loadOpts, config.WithOverride("storage.ephemeral", opts.Ephemeral))
	}
	if flags.Changed("log-level") {
		loadOpts = append(loadOpts, config.WithOverride("log.level", opts.LogLevel))
	}

	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}

	a := &app{cfg: cfg}

	var logOut io.Writer = cmd.ErrOrStderr()
	if cfg.Log.File != "" {
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "open log file", err)
		}
		a.closers = append(a.closers, f)
		logOut = f
	}
	a.logger, err = logger.Setup(cfg.Log, logOut)
	if err != nil {
		a.Close()
		return nil, WrapExitError(ExitCommandError, "set up logging", err)
	}

	var kv store.KVStore
	if cfg.Storage.Ephemeral {
		kv = store.NewMemoryKV()
		a.logger.Debug("using in-memory storage")
	} else {
		kv, err = sqlite.Open(ctx, cfg.Storage.Path, a.logger)
		if err != nil {
			a.Close()
			return nil, WrapExitError(ExitCommandError, "open database", err)
		}
	}
	a.closers = append(a.closers, kv)

	a.adapter, err = persistence.NewAdapter(kv, cfg.Storage.Key, a.logger)
	if err != nil {
		a.Close()
		return nil, WrapExitError(ExitCommandError, "create persistence adapter", err)
	}
	return a, nil
}

// scope returns ctx carrying the app logger tagged with the command name.
// Components that log through the context pick it up from there.
func (a *app) scope(ctx context.Context, cmd *cobra.Command) context.Context {
	return logger.WithLogger(ctx, a.logger.With(slog.String("command", cmd.Name())))
}

// openStore loads the deck into a state store that saves every change.
func (a *app) openStore(ctx context.Context) (*service.StateStore, persistence.Source, error) {
	s, source, err := service.Open(ctx, a.adapter, a.logger)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "open deck", err)
	}
	return s, source, nil
}

// Close releases the backend and log file, newest first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
