package utils

import (
	"context"
	"fmt"
	"time"

	"styledecor/config"

	"github.com/go-redis/redis/v8"
)

// NewAuthCacheClient connects the Redis database used to cache verified tokens.
// It returns nil, nil when no Redis address is configured.
func NewAuthCacheClient() (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (auth cache): %w", err)
	}
	return client, nil
}
