package repository

import (
	"context"
	"testing"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStorage(t *testing.T) *Storage {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	storage := NewStorage(db)
	require.NoError(t, storage.EnsureSchema(context.Background()))

	t.Cleanup(func() {
		_ = storage.Close()
	})
	return storage
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := setupStorage(t)

	_, ok, err := storage.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem(ctx, "token", "first"))
	v, ok, err := storage.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	require.NoError(t, storage.SetItem(ctx, "token", "second"))
	v, ok, err = storage.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	count, err := storage.db.NewSelect().Model((*StorageItemModel)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "setting twice must keep a single row")

	require.NoError(t, storage.RemoveItem(ctx, "token"))
	_, ok, err = storage.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_RemoveMissingKey(t *testing.T) {
	storage := setupStorage(t)
	assert.NoError(t, storage.RemoveItem(context.Background(), "missing"))
}

func TestStorage_BacksTokenStore(t *testing.T) {
	ctx := context.Background()
	tokens := jobtrack.NewTokenStore(setupStorage(t)).WithLogger(jobtrack.NopLogger())

	assert.False(t, tokens.IsAuthenticated(ctx))

	require.NoError(t, tokens.Set(ctx, "abc.def.ghi"))
	token, ok := tokens.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
	assert.True(t, tokens.IsAuthenticated(ctx))

	require.NoError(t, tokens.Remove(ctx))
	assert.False(t, tokens.IsAuthenticated(ctx))
}
