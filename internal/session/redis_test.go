package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestSetGet_RoundTrip(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tok-1:"+KeyUser, `{"id":42}`))

	value, err := store.Get(ctx, "tok-1:"+KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":42}`, value)
}

func TestGet_Missing(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSet_NoExpiry(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tok-1:"+KeyIsLoggedIn, "true"))

	// Sessions are durable: no TTL should be attached.
	assert.Equal(t, int64(0), int64(mr.TTL("session:tok-1:"+KeyIsLoggedIn)))
}

func TestRemove_MultipleKeys(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "tok-1:"+KeyUser, "u"))
	require.NoError(t, store.Set(ctx, "tok-1:"+KeyAuthToken, "t"))
	require.NoError(t, store.Set(ctx, "tok-1:"+KeyIsLoggedIn, "true"))

	require.NoError(t, store.Remove(ctx, "tok-1:"+KeyUser, "tok-1:"+KeyAuthToken, "tok-1:"+KeyIsLoggedIn))

	_, err := store.Get(ctx, "tok-1:"+KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "tok-1:"+KeyIsLoggedIn)
	assert.ErrorIs(t, err, ErrNotFound)
}
