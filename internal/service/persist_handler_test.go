package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/persistence"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "flashcard_groups_v5_data"

type countingSaver struct {
	saves int
	last  *domain.State
	err   error
}

func (c *countingSaver) Save(_ context.Context, state *domain.State) error {
	c.saves++
	c.last = state
	return c.err
}

type fixedSource struct{ state *domain.State }

func (f fixedSource) Snapshot() *domain.State { return f.state }

func TestPersistHandlerSavesOnEveryEvent(t *testing.T) {
	saver := &countingSaver{}
	state := domain.SeedState()
	h := NewPersistHandler(saver, fixedSource{state}, logger.Discard())

	for _, eventType := range events.MutatingTypes() {
		require.NoError(t, h.HandleEvent(context.Background(), &events.StateEvent{Type: eventType}))
	}

	assert.Equal(t, 4, saver.saves)
	assert.Same(t, state, saver.last)
}

func TestOpenSkipsSaveForHardFeedback(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	adapter, err := persistence.NewAdapter(kv, testKey, logger.Discard())
	require.NoError(t, err)

	s, _, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)

	s.RecordHard(ctx, 1, 101)
	_, found, err := kv.Get(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, found)

	s.RecordEasy(ctx, 1, 101)
	_, found, err = kv.Get(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestOpenLastSaveMatchesFinalState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	adapter, err := persistence.NewAdapter(kv, testKey, logger.Discard())
	require.NoError(t, err)

	s, _, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if j%2 == 0 {
					s.RecordEasy(ctx, 1, 101)
					continue
				}
				_, err := s.AddCard(ctx, 2, domain.CardInput{
					Category: "Load", Question: fmt.Sprintf("q%d-%d", i, j), Answer: "a",
				})
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	want, err := persistence.Encode(s.Snapshot())
	require.NoError(t, err)
	got, found, err := kv.Get(ctx, testKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, want, got)
}

func TestPersistHandlerReportsSaveFailure(t *testing.T) {
	handler := testutils.NewTestSlogHandler()
	saver := &countingSaver{err: errors.New("disk full")}
	h := NewPersistHandler(saver, fixedSource{domain.SeedState()}, slog.New(handler))

	err := h.HandleEvent(context.Background(), &events.StateEvent{Type: events.TypeCardEasy})

	assert.EqualError(t, err, "disk full")
	assert.True(t, handler.HasMessage("failed to persist state"))
}

func TestOpenPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	adapter, err := persistence.NewAdapter(kv, testKey, logger.Discard())
	require.NoError(t, err)

	s, source, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, persistence.SourceSeed, source)

	// nothing is written until something changes
	_, found, err := kv.Get(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, found)

	gid, err := s.CreateGroup(ctx, "Math")
	require.NoError(t, err)
	_, err = s.AddCard(ctx, gid, domain.CardInput{Category: "Algebra", Question: "1+1", Answer: "2"})
	require.NoError(t, err)
	s.RecordEasy(ctx, 1, 101)
	s.DeleteGroup(ctx, 2)

	reopened, source, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, persistence.SourceStored, source)
	assert.Equal(t, s.Groups(), reopened.Groups())

	nextGroup, nextCard := reopened.NextIDs()
	assert.Equal(t, domain.GroupID(4), nextGroup)
	assert.Equal(t, domain.CardID(204), nextCard)
}

func TestOpenDeletingEveryGroupReseeds(t *testing.T) {
	ctx := context.Background()
	adapter, err := persistence.NewAdapter(store.NewMemoryKV(), testKey, logger.Discard())
	require.NoError(t, err)

	s, _, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)
	s.DeleteGroup(ctx, 1)
	s.DeleteGroup(ctx, 2)
	assert.Empty(t, s.Groups())

	reopened, source, err := Open(ctx, adapter, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, persistence.SourceSeed, source)
	assert.Len(t, reopened.Groups(), 2)
}

func TestOpenNilAdapter(t *testing.T) {
	_, _, err := Open(context.Background(), nil, nil)
	var serr *StateStoreError
	require.True(t, errors.As(err, &serr))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStateStoreError(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "state store open failed: bad: boom", NewStateStoreError("open", "bad", cause).Error())
	assert.Equal(t, "state store open failed: bad", NewStateStoreError("open", "bad", nil).Error())
	assert.ErrorIs(t, NewStateStoreError("open", "bad", cause), cause)
}
