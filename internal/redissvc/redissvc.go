// Package redissvc wraps the redis client used for cross-cutting services
// such as alert delivery deduplication.
package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

// MarkOnce sets key with the given TTL only if it does not exist, and reports
// whether this call was the one that set it. Used to deliver an alert at most
// once per dedupe window.
func (a *RedisService) MarkOnce(key string, ttl time.Duration) (bool, error) {
	return a.rdb.SetNX(a.ctx, key, 1, ttl).Result()
}
