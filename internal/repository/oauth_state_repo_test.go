package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateStore(t *testing.T) (StateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStateStore(rdb), mr
}

func TestStateStore_SingleUse(t *testing.T) {
	store, mr := newStateStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", time.Minute))
	assert.True(t, mr.Exists("oauth:state:abc"))

	ok, err := store.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_Expired(t *testing.T) {
	store, mr := newStateStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "late", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := store.Consume(ctx, "late")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_Unavailable(t *testing.T) {
	store, mr := newStateStore(t)
	mr.Close()

	_, err := store.Consume(context.Background(), "abc")
	assert.Error(t, err)
}
