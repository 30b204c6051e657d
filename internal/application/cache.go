package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

// SnapshotCache keeps GetOne results of live entities in redis.
// A nil cache or nil client disables caching.
type SnapshotCache struct {
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *SnapshotCache {
	return &SnapshotCache{Redis: rdb, TTL: ttl, Logger: logger}
}

func cacheKey(resource policy.Resource, id int64) string {
	return fmt.Sprintf("cache:%s:%d", resource, id)
}

func (c *SnapshotCache) enabled() bool {
	return c != nil && c.Redis != nil && c.TTL > 0
}

func cacheGet[T any](ctx context.Context, c *SnapshotCache, resource policy.Resource, id int64) (*T, bool) {
	if !c.enabled() {
		return nil, false
	}
	var v T
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, cacheKey(resource, id), &v)
	if err != nil {
		c.warn(err, resource, id, "cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &v, true
}

func (c *SnapshotCache) Set(ctx context.Context, resource policy.Resource, id int64, v any) {
	if !c.enabled() {
		return
	}
	if err := helpers.RedisSetJSON(ctx, c.Redis, cacheKey(resource, id), v, c.TTL); err != nil {
		c.warn(err, resource, id, "cache write failed")
	}
}

func (c *SnapshotCache) Invalidate(ctx context.Context, resource policy.Resource, id int64) {
	if !c.enabled() {
		return
	}
	if err := helpers.RedisDel(ctx, c.Redis, cacheKey(resource, id)); err != nil {
		c.warn(err, resource, id, "cache invalidate failed")
	}
}

func (c *SnapshotCache) warn(err error, resource policy.Resource, id int64, msg string) {
	if c.Logger != nil {
		c.Logger.WithError(err).WithFields(logrus.Fields{"resource": resource, "resource_id": id}).Warn(msg)
	}
}
