package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
)

const (
	keyPrefix = "directory:"
	listKey   = keyPrefix + "users"
)

// UserCache defines the interface for caching fetched user records.
type UserCache interface {
	// GetList retrieves the cached user collection.
	// Returns nil with no error on a cache miss.
	GetList(ctx context.Context) ([]domain.User, error)

	// SetList stores the user collection with the configured TTL.
	SetList(ctx context.Context, users []domain.User) error

	// Get retrieves a user from cache by ID.
	// Returns nil if user is not found in cache.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Invalidate drops the collection and the given users from the cache.
	Invalidate(ctx context.Context, ids ...int64) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) UserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a user ID.
func (c *RedisUserCache) cacheKey(id int64) string {
	return fmt.Sprintf("%suser:%d", keyPrefix, id)
}

// GetList retrieves the user collection from Redis.
func (c *RedisUserCache) GetList(ctx context.Context) ([]domain.User, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("key", listKey))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get user list from cache", zap.Error(err))
		return nil, err
	}

	users := []domain.User{}
	if err := json.Unmarshal(data, &users); err != nil {
		c.log.Error("failed to unmarshal cached user list", zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", listKey), zap.Int("count", len(users)))
	return users, nil
}

// SetList stores the user collection in Redis with TTL.
func (c *RedisUserCache) SetList(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}

	data, err := json.Marshal(users)
	if err != nil {
		c.log.Error("failed to marshal user list for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set user list cache", zap.Error(err))
		return err
	}

	c.log.Debug("cached user list", zap.Int("count", len(users)), zap.Duration("ttl", c.ttl))
	return nil
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	key := c.cacheKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.Int64("user_id", id))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Error("failed to unmarshal cached user", zap.Int64("user_id", id), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.Int64("user_id", id))
	return &user, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	key := c.cacheKey(user.ID)

	data, err := json.Marshal(user)
	if err != nil {
		c.log.Error("failed to marshal user for cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	c.log.Debug("cached user", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes the user collection and the given users from Redis.
func (c *RedisUserCache) Invalidate(ctx context.Context, ids ...int64) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, c.cacheKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Error("failed to invalidate cache", zap.Int("count", len(keys)), zap.Error(err))
		return err
	}

	c.log.Debug("invalidated cache", zap.Int("count", len(keys)))
	return nil
}
