package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
)

func TestInMemoryIdempotencyStore_FlujoCompleto(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryIdempotencyStore(0)
	defer store.Close()

	resp, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	ok, err := store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "segunda reserva de la misma llave")

	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, cache.ErrKeyInFlight)

	require.NoError(t, store.Complete(ctx, "k1", cache.StoredResponse{Status: 201, Body: []byte(`{"ok":true}`)}, time.Minute))
	resp, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.Status)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestInMemoryIdempotencyStore_ReleasePermiteReintentar(t *testing.T) {
	ctx := context.Background()
	store := cache.NewInMemoryIdempotencyStore(0)
	defer store.Close()

	ok, _ := store.Reserve(ctx, "k1", time.Minute)
	require.True(t, ok)
	require.NoError(t, store.Release(ctx, "k1"))

	ok, err := store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_Expira(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := cache.NewInMemoryIdempotencyStore(0).WithClock(func() time.Time { return now })
	defer store.Close()

	require.NoError(t, store.Complete(ctx, "k1", cache.StoredResponse{Status: 200}, time.Minute))

	now = now.Add(2 * time.Minute)
	resp, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp, "la respuesta vencida no se repite")
}

func TestInMemoryIdempotencyStore_CloseIdempotente(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(10 * time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
