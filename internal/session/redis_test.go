package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, ttl)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_PutGet(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	sess := domain.NewSession("42", domain.LanguageAR)
	sess.Cart.Add(latte())
	sess.Pending = domain.AwaitingAddress("Send address")
	sess.Phone = "+971"
	require.NoError(t, store.Put(ctx, sess))

	assert.True(t, mr.Exists("session:42"))
	assert.Equal(t, time.Hour, mr.TTL("session:42"))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.LanguageAR, got.Language)
	assert.Equal(t, "+971", got.Phone)
	assert.Equal(t, domain.PendingAwaitingAddress, got.Pending.Kind)
	assert.Equal(t, "Send address", got.Pending.Label)
	require.Len(t, got.Cart, 1)
	assert.True(t, got.Cart[0].UnitPrice.Equal(latte().UnitPrice))
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := setupTestRedis(t, 0)

	got, err := store.Get(context.Background(), "none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.NewSession("1", domain.LanguageFA)))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_NoTTL(t *testing.T) {
	store, mr := setupTestRedis(t, 0)

	require.NoError(t, store.Put(context.Background(), domain.NewSession("1", domain.LanguageFA)))
	assert.Equal(t, time.Duration(0), mr.TTL("session:1"))
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.NewSession("1", domain.LanguageFA)))
	require.NoError(t, store.Delete(ctx, "1"))
	assert.False(t, mr.Exists("session:1"))
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, mr.Set("session:1", "{not json"))

	_, err := store.Get(context.Background(), "1")
	assert.Error(t, err)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "1")
	assert.Error(t, err)
}
