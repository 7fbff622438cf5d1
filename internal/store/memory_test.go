package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()

	_, found, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, found, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)

	assert.ErrorIs(t, kv.Set(ctx, "", "x"), ErrInvalidKey)
	_, _, err = kv.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMemoryKVClosedAndCancelled(t *testing.T) {
	t.Parallel()
	kv := NewMemoryKV()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, kv.Set(cancelled, "k", "v"), context.Canceled)

	require.NoError(t, kv.Close())
	_, _, err := kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, kv.Set(context.Background(), "k", "v"), ErrClosed)
}
