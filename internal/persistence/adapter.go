package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// Source tells where a loaded state came from.
type Source string

// Possible load sources
const (
	SourceStored Source = "stored"
	SourceSeed   Source = "seed"
)

// Adapter reads and writes the deck under one key.
type Adapter struct {
	kv     store.KVStore
	key    string
	logger *slog.Logger
}

// NewAdapter creates an Adapter. It returns an error if kv is nil or key is
// empty.
func NewAdapter(kv store.KVStore, key string, logger *slog.Logger) (*Adapter, error) {
	if kv == nil {
		return nil, errors.New("kv store cannot be nil")
	}
	if key == "" {
		return nil, store.ErrInvalidKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		kv:     kv,
		key:    key,
		logger: logger.With(slog.String("component", "persistence")),
	}, nil
}

// Key returns the KV key the deck lives under.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored state with counters recomputed from its content.
// When nothing usable is stored (absent, an empty mapping, unreadable, or
// undecodable) it returns the seed dataset instead. Load never fails.
func (a *Adapter) Load(ctx context.Context) (*domain.State, Source) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	raw, found, err := a.kv.Get(ctx, a.key)
	if err != nil {
		log.Error("failed to read persisted state, using seed data",
			slog.String("error", (&ReadError{Key: a.key, Err: err}).Error()))
		return domain.SeedState(), SourceSeed
	}
	if !found {
		log.Info("no persisted state, using seed data", slog.String("key", a.key))
		return domain.SeedState(), SourceSeed
	}

	groups, err := decodeGroups(raw)
	if err != nil {
		log.Error("failed to parse persisted state, using seed data",
			slog.String("error", (&ReadError{Key: a.key, Err: err}).Error()))
		return domain.SeedState(), SourceSeed
	}
	if len(groups) == 0 {
		log.Info("persisted state is empty, using seed data", slog.String("key", a.key))
		return domain.SeedState(), SourceSeed
	}

	state := domain.NewState(groups)
	log.Debug("loaded persisted state",
		slog.Int("group_count", len(state.Groups)),
		slog.Int("next_group_id", int(state.NextGroupID)),
		slog.Int("next_card_id", int(state.NextCardID)))
	return state, SourceStored
}

// Save overwrites the stored blob with the groups of state.
func (a *Adapter) Save(ctx context.Context, state *domain.State) error {
	if state == nil {
		return errors.New("state cannot be nil")
	}

	raw, err := Encode(state)
	if err != nil {
		return err
	}

	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	logger.FromContextOrDefault(ctx, a.logger).Debug("saved state",
		slog.Int("group_count", len(state.Groups)),
		slog.Int("bytes", len(raw)))
	return nil
}

// Encode renders the persisted form of state: only the group mapping.
func Encode(state *domain.State) (string, error) {
	out := make(map[string]*domain.Group, len(state.Groups))
	for id, g := range state.Groups {
		c := g.Clone()
		c.ID = id
		out[strconv.Itoa(int(id))] = c
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// decodeGroups parses the persisted mapping. Keys are the authoritative IDs
// and must be written canonically ("1", never "01" or "+1"); missing cards decode as an empty sequence and a missing easyCount as 0.
func decodeGroups(raw string) (map[domain.GroupID]*domain.Group, error) {
	var stored map[string]*domain.Group
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}

	groups := make(map[domain.GroupID]*domain.Group, len(stored))
	for key, g := range stored {
		id, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(id) != key {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGroupKey, key)
		}
		if g == nil {
			return nil, fmt.Errorf("group %q is null", key)
		}
		if g.Cards == nil {
			g.Cards = []domain.Card{}
		}
		g.ID = domain.GroupID(id)
		groups[g.ID] = g
	}
	return groups, nil
}
