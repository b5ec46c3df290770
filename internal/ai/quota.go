// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/linkshelf/internal/platform/constants"
)

const quotaWindow = time.Hour

// RedisQuota caps generations per user per clock hour.
//
// Each hour gets its own key, so counters never need resetting; the expiry
// only reclaims memory.
type RedisQuota struct {
	client redis.UniversalClient
	limit  int64
	now    func() time.Time
}

// NewRedisQuota constructs a quota allowing limit generations per hour.
func NewRedisQuota(client redis.UniversalClient, limit int) *RedisQuota {
	return &RedisQuota{client: client, limit: int64(limit), now: time.Now}
}

// Allow counts one attempt for userID and reports whether it is within the limit.
func (quota *RedisQuota) Allow(ctx context.Context, userID string) (bool, error) {
	key := quota.key(userID)

	pipeline := quota.client.TxPipeline()
	count := pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, quotaWindow)
	if _, err := pipeline.Exec(ctx); err != nil {
		return false, fmt.Errorf("ai quota: %w", err)
	}

	return count.Val() <= quota.limit, nil
}

func (quota *RedisQuota) key(userID string) string {
	return constants.RedisPrefixAIQuota + userID + ":" + quota.now().UTC().Format("2006010215")
}
