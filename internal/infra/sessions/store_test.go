package sessions

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, "clinic:revoked:"), mr
}

func TestStore_RevokeAndCheck(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.True(t, mr.Exists("clinic:revoked:jti-1"))
	ttl := mr.TTL("clinic:revoked:jti-1")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %v", ttl)
}

func TestStore_RevocationExpiresWithToken(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-2", time.Now().Add(10*time.Minute)))
	mr.FastForward(11 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestStore_ExpiredTokenIsNotStored(t *testing.T) {
	store, mr := setupStore(t)

	require.NoError(t, store.Revoke(context.Background(), "jti-3", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("clinic:revoked:jti-3"))
}

func TestStore_Errors(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Revoke(ctx, "", time.Now().Add(time.Hour)), ErrEmptyTokenID)
	_, err := store.IsRevoked(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyTokenID)

	require.NoError(t, store.Ping(ctx))

	mr.Close()
	_, err = store.IsRevoked(ctx, "jti-4")
	assert.ErrorIs(t, err, ErrStore)
}
