package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	// SQLite driver - imported for side effects (registers the "sqlite" driver).
	_ "modernc.org/sqlite"

	"github.com/phrazzld/flashdeck/internal/store"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// KVStore implements store.KVStore on a kv_entries table.
type KVStore struct {
	db     *sql.DB
	mu     sync.RWMutex // Guards closed; database/sql handles its own pooling.
	closed bool
	logger *slog.Logger
	now    func() time.Time
}

var _ store.KVStore = (*KVStore)(nil)

// Open opens or creates the database at path, creating parent directories
// as needed, and migrates the schema. Use MemoryPath for a throwaway store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*KVStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "sqlite_kv"))

	if path == "" {
		return nil, store.NewStoreError("kv", "open", "database path is empty", store.ErrInvalidKey)
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, store.NewStoreError("kv", "open", "create database directory", err)
		}
	}

	logger.Debug("opening database", slog.String("path", path))

	// busy_timeout covers a CLI subcommand reading while the TUI writes.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, store.NewStoreError("kv", "open", "open database", err)
	}
	if path == MemoryPath {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, store.NewStoreError("kv", "open", "ping database", err)
	}

	if err := migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, store.NewStoreError("kv", "open", "migrate schema", err)
	}

	return &KVStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Get implements store.KVStore.Get.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.NewStoreError("kv", "get", "key is empty", store.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.NewStoreError("kv", "get", "backend unavailable", store.ErrClosed)
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.NewStoreError("kv", "get", fmt.Sprintf("read %q", key), err)
	}
	return value, true, nil
}

// Set implements store.KVStore.Set.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.NewStoreError("kv", "set", "key is empty", store.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.NewStoreError("kv", "set", "backend unavailable", store.ErrClosed)
	}

	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return store.NewStoreError("kv", "set", fmt.Sprintf("write %q", key), err)
	}

	s.logger.Debug("stored value", slog.String("key", key), slog.Int("bytes", len(value)))
	return nil
}

// Close releases the database connection. It is safe to call twice.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("closing database")
	return s.db.Close()
}
