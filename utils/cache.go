// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"slotbook/config"
)

// CacheClient is the Redis client backing the availability config cache.
var CacheClient *redis.Client

// InitCache connects CacheClient using the REDIS_* settings. It returns an error
// instead of exiting so the caller can decide whether the cache is optional.
func InitCache() error {
	if config.AppConfig.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the cache client, or nil when Redis is not configured.
func GetCacheClient() *redis.Client {
	return CacheClient
}
