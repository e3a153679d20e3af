package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "shared-finance-go/internal/domain/accounts"
	"shared-finance-go/pkg/logger"
)

func newCache(t *testing.T) (*AccountsCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewAccountsCache(client, logger.Nop()), server
}

func TestAccountsCacheRoundTrip(t *testing.T) {
	cache, server := newCache(t)
	ctx := context.Background()

	account := &accountsdomain.Account{ID: "acc-1", Name: "Casa", AccessKey: "ab12cd34", IsActive: true}
	cache.SetByID(ctx, account.ID, account, time.Minute)

	got, ok := cache.GetByID(ctx, account.ID)
	require.True(t, ok)
	assert.Equal(t, "Casa", got.Name)
	assert.Equal(t, "ab12cd34", got.AccessKey)
	assert.True(t, server.Exists(accountKeyPrefix+"acc-1"))

	server.FastForward(2 * time.Minute)
	_, ok = cache.GetByID(ctx, account.ID)
	assert.False(t, ok)
}

func TestAccountsCacheDelete(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	cache.SetByID(ctx, "acc-1", &accountsdomain.Account{ID: "acc-1"}, time.Minute)
	cache.DeleteByID(ctx, "acc-1")

	_, ok := cache.GetByID(ctx, "acc-1")
	assert.False(t, ok)
}

func TestAccountsCacheIgnoresCorruptValues(t *testing.T) {
	cache, server := newCache(t)
	require.NoError(t, server.Set(accountKeyPrefix+"acc-1", "{not json"))

	_, ok := cache.GetByID(context.Background(), "acc-1")
	assert.False(t, ok)
}

func TestConnectFailsWhenServerIsDown(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := Connect(context.Background(), addr)
	assert.Error(t, err)
}
