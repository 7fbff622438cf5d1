package persistence

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testutils"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "flashcard_groups_v5_data"

// failingKV fails every call with err.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error        { return f.err }
func (f failingKV) Close() error                                     { return nil }

func newAdapter(t *testing.T, kv store.KVStore, log *slog.Logger) *Adapter {
	t.Helper()
	if log == nil {
		log = logger.Discard()
	}
	a, err := NewAdapter(kv, testKey, log)
	require.NoError(t, err)
	return a
}

func assertSeed(t *testing.T, state *domain.State, source Source) {
	t.Helper()
	assert.Equal(t, SourceSeed, source)
	require.Len(t, state.Groups, 2)
	assert.Contains(t, state.Groups, domain.GroupID(1))
	assert.Contains(t, state.Groups, domain.GroupID(2))
	assert.Equal(t, domain.GroupID(3), state.NextGroupID)
	assert.Equal(t, domain.CardID(203), state.NextCardID)
}

func TestNewAdapterValidation(t *testing.T) {
	_, err := NewAdapter(nil, testKey, nil)
	assert.Error(t, err)

	_, err = NewAdapter(store.NewMemoryKV(), "", nil)
	assert.ErrorIs(t, err, store.ErrInvalidKey)

	a, err := NewAdapter(store.NewMemoryKV(), testKey, nil)
	require.NoError(t, err)
	assert.Equal(t, testKey, a.Key())
}

func TestLoadSeedsWhenNothingUsable(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
	}{
		{name: "absent"},
		{name: "empty mapping", stored: ptr(`{}`)},
		{name: "null", stored: ptr(`null`)},
		{name: "garbage", stored: ptr(`{"1": {`)},
		{name: "wrong shape", stored: ptr(`[1,2,3]`)},
		{name: "non numeric key", stored: ptr(`{"abc":{"id":1,"name":"x","cards":[]}}`)},
		{name: "null group", stored: ptr(`{"1":null}`)},
		{name: "padded key colliding with plain key", stored: ptr(`{"1":{"name":"a","cards":[]},"01":{"name":"b","cards":[]}}`)},
		{name: "signed key", stored: ptr(`{"+2":{"name":"x","cards":[]}}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.NewMemoryKV()
			if tc.stored != nil {
				require.NoError(t, kv.Set(ctx, testKey, *tc.stored))
			}

			state, source := newAdapter(t, kv, nil).Load(ctx)
			assertSeed(t, state, source)
		})
	}
}

func TestLoadReadFailureIsLogged(t *testing.T) {
	handler := testutils.NewTestSlogHandler()
	a := newAdapter(t, failingKV{err: errors.New("disk gone")}, slog.New(handler))

	state, source := a.Load(context.Background())

	assertSeed(t, state, source)
	entries := handler.EntriesAtLevel(slog.LevelError)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0]["error"], "disk gone")
}

func TestDecodeGroupsRejectsNonCanonicalKeys(t *testing.T) {
	for _, key := range []string{"01", "+1", " 1", "abc"} {
		_, err := decodeGroups(`{"` + key + `":{"name":"x","cards":[]}}`)
		assert.ErrorIs(t, err, ErrInvalidGroupKey, key)
	}

	groups, err := decodeGroups(`{"10":{"name":"x"}}`)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupID(10), groups[10].ID)
	assert.NotNil(t, groups[10].Cards)
}

func TestLoadRecomputesCounters(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, testKey,
		`{"5":{"id":5,"name":"Five","cards":[{"id":900,"category":"c","question":"q","answer":"a"}]},`+
			`"2":{"id":99,"name":"Two"}}`))

	state, source := newAdapter(t, kv, nil).Load(ctx)

	assert.Equal(t, SourceStored, source)
	assert.Equal(t, domain.GroupID(6), state.NextGroupID)
	assert.Equal(t, domain.CardID(901), state.NextCardID)

	two := state.Groups[2]
	require.NotNil(t, two)
	assert.Equal(t, domain.GroupID(2), two.ID, "mapping key wins over the stored id")
	assert.NotNil(t, two.Cards)
	assert.Empty(t, two.Cards)

	assert.Equal(t, 0, state.Groups[5].Cards[0].EasyCount)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t, store.NewMemoryKV(), nil)

	original := domain.SeedState()
	original.Groups[1].Cards[0].EasyCount = 4
	original.Groups[7] = &domain.Group{ID: 7, Name: "Math", Cards: []domain.Card{}}
	// stale counters must not survive
	original.NextGroupID = 100
	original.NextCardID = 5000

	require.NoError(t, a.Save(ctx, original))
	loaded, source := a.Load(ctx)

	assert.Equal(t, SourceStored, source)
	assert.Equal(t, original.Groups, loaded.Groups)
	assert.Equal(t, domain.GroupID(8), loaded.NextGroupID)
	assert.Equal(t, domain.CardID(203), loaded.NextCardID)
}

func TestSaveEmptyStateReloadsAsSeed(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t, store.NewMemoryKV(), nil)

	require.NoError(t, a.Save(ctx, domain.NewState(nil)))
	state, source := a.Load(ctx)
	assertSeed(t, state, source)
}

func TestSaveErrors(t *testing.T) {
	ctx := context.Background()

	a := newAdapter(t, failingKV{err: errors.New("read only")}, nil)
	err := a.Save(ctx, domain.SeedState())
	assert.ErrorContains(t, err, "read only")

	assert.Error(t, a.Save(ctx, nil))
}

func TestSeedBlobGolden(t *testing.T) {
	raw, err := Encode(domain.SeedState())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "seed_blob", []byte(raw))
}

func TestReadError(t *testing.T) {
	cause := errors.New("bad json")
	err := &ReadError{Key: "k", Err: cause}
	assert.Equal(t, `read persisted state "k": bad json`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func ptr(s string) *string { return &s }
