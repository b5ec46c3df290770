// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai_test

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/taibuivan/linkshelf/internal/ai"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "docker.io/redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

/*
TestRedisQuota verifies the hourly cap, per-user isolation and key expiry.
*/
func TestRedisQuota(t *testing.T) {
	client := newRedis(t)
	quota := ai.NewRedisQuota(client, 2)
	ctx := context.Background()

	for i, expected := range []bool{true, true, false} {
		allowed, err := quota.Allow(ctx, "user-a")
		require.NoError(t, err)
		assert.Equal(t, expected, allowed, "attempt %d", i+1)
	}

	allowed, err := quota.Allow(ctx, "user-b")
	require.NoError(t, err)
	assert.True(t, allowed)

	keys, err := client.Keys(ctx, "ai:quota:user-a:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)

	ttl, err := client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
