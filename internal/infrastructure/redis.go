package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"user-directory/internal/adapter/cache"
	"user-directory/internal/config"
	redisclient "user-directory/pkg/redis"
)

// NewRedisClient connects to Redis when REDIS_ENABLED is set. It returns a
// nil client when Redis is disabled.
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	rdb, err := redisclient.NewClient(ctx, redisclient.Config{
		Addr:        cfg.Redis.Addr(),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// NewUserCache returns the Redis user cache, or nil when rdb is nil or the
// TTL is zero.
func NewUserCache(cfg *config.Config, rdb *redisclient.Client, l *zap.Logger) cache.UserCache {
	if rdb == nil || cfg.Redis.CacheTTL <= 0 {
		return nil
	}
	return cache.NewRedisUserCache(rdb.Client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
}
