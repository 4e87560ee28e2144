package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const resultCachePrefix = "maturity:analysis:"

// RedisResultCache 缓存序列化后的分析结果
type RedisResultCache struct {
	Redis *redis.Client
}

func NewRedisResultCache(rdb *redis.Client) *RedisResultCache {
	return &RedisResultCache{Redis: rdb}
}

func resultKey(userID uint) string {
	return fmt.Sprintf("%s%d", resultCachePrefix, userID)
}

func (c *RedisResultCache) Get(ctx context.Context, userID uint) ([]byte, bool, error) {
	data, err := c.Redis.Get(ctx, resultKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, userID uint, data []byte, ttl time.Duration) error {
	return c.Redis.Set(ctx, resultKey(userID), data, ttl).Err()
}

func (c *RedisResultCache) Delete(ctx context.Context, userID uint) error {
	return c.Redis.Del(ctx, resultKey(userID)).Err()
}
