package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresHandleCase(t *testing.T) {
	assert.Equal(t, "tgcfbot:solved:tourist", key("Tourist"))
	assert.Equal(t, key("tourist"), key("TOURIST"))
}

func TestMembersCarrySentinelOnlyOnPut(t *testing.T) {
	solved := map[string]struct{}{"4A": {}}
	assert.ElementsMatch(t, []any{sentinel, "4A"}, members(solved, true))
	assert.ElementsMatch(t, []any{"4A"}, members(solved, false))
	assert.Equal(t, []any{sentinel}, members(nil, true))
}

func TestFromMembers(t *testing.T) {
	tests := []struct {
		name   string
		raw    []string
		want   map[string]struct{}
		wantOK bool
	}{
		{name: "missing key", raw: nil},
		{name: "added after expiry", raw: []string{"4A"}},
		{name: "empty solved set", raw: []string{sentinel}, want: map[string]struct{}{}, wantOK: true},
		{name: "populated", raw: []string{"4A", sentinel, "1B"}, want: map[string]struct{}{"4A": {}, "1B": {}}, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fromMembers(tc.raw)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func newRedisCache(t *testing.T, ttl time.Duration) *SolvedCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return NewSolvedCache(rdb, ttl)
}

func TestSolvedCacheRoundTrip(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	handle := "cache_test_" + time.Now().Format("150405.000000")
	t.Cleanup(func() { c.rdb.Del(context.Background(), key(handle)) })

	_, ok, err := c.Get(ctx, handle)
	require.NoError(t, err)
	assert.False(t, ok)

	want := map[string]struct{}{"100A": {}, "4A": {}}
	require.NoError(t, c.Put(ctx, handle, want))

	got, ok, err := c.Get(ctx, handle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	ttl, err := c.rdb.TTL(ctx, key(handle)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSolvedCacheEmptySetIsAHit(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	handle := "cache_empty_" + time.Now().Format("150405.000000")
	t.Cleanup(func() { c.rdb.Del(context.Background(), key(handle)) })

	require.NoError(t, c.Put(ctx, handle, map[string]struct{}{}))

	got, ok, err := c.Get(ctx, handle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSolvedCacheAddKeepsTTL(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	handle := "cache_add_" + time.Now().Format("150405.000000")
	t.Cleanup(func() { c.rdb.Del(context.Background(), key(handle)) })

	require.NoError(t, c.Put(ctx, handle, map[string]struct{}{"4A": {}}))
	require.NoError(t, c.rdb.Expire(ctx, key(handle), 30*time.Second).Err())
	require.NoError(t, c.Add(ctx, handle, map[string]struct{}{"1B": {}}))

	got, ok, err := c.Get(ctx, handle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]struct{}{"4A": {}, "1B": {}}, got)

	ttl, err := c.rdb.TTL(ctx, key(handle)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 30*time.Second)
}

func TestSolvedCacheAddAfterExpiryIsAMiss(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	handle := "cache_orphan_" + time.Now().Format("150405.000000")
	t.Cleanup(func() { c.rdb.Del(context.Background(), key(handle)) })

	require.NoError(t, c.Add(ctx, handle, map[string]struct{}{"1B": {}}))

	_, ok, err := c.Get(ctx, handle)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := c.rdb.TTL(ctx, key(handle)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "orphan set still expires")
}
