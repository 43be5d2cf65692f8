//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/ciutil"
	"github.com/phrazzld/astral-api/internal/platform/cache"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	addr := ciutil.TestRedisAddr()
	if addr == "" {
		t.Skip("ASTRAL_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:   addr,
		Prefix: "astral-test-" + uuid.NewString(),
	}, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	chart := testChart("redis")
	require.NoError(t, c.Set(ctx, "k", chart, time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, chart.ID, got.ID)
	assert.Equal(t, chart.Summary, got.Summary)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
