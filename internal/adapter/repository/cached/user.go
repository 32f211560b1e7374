package cached

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory/internal/adapter/cache"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
)

const listFlightKey = "users"

// flightTimeout bounds a shared source fetch once it is detached from the
// caller that started it.
const flightTimeout = 30 * time.Second

// CachedUserRepository implements user.Repository with caching support.
// It wraps a user record source (REST or snapshot) and a cache implementation.
type CachedUserRepository struct {
	source user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
// A nil cache disables caching but keeps single-flight deduplication.
func NewCachedUserRepository(source user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		source: source,
		cache:  cache,
		log:    log,
	}
}

// List retrieves the whole directory using the cache-aside pattern.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if r.cache != nil {
		users, err := r.cache.GetList(ctx)
		if err != nil {
			r.log.Warn("cache get list error, falling back to source", zap.Error(err))
		} else if users != nil {
			r.log.Debug("user list retrieved from cache", zap.Int("count", len(users)))
			return users, nil
		}
	}

	result, err := r.do(ctx, listFlightKey, func(ctx context.Context) (any, error) {
		// Another caller may have filled the cache while we waited
		if r.cache != nil {
			users, err := r.cache.GetList(ctx)
			if err == nil && users != nil {
				return users, nil
			}
		}

		users, err := r.source.List(ctx)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.SetList(ctx, users); err != nil {
				r.log.Warn("failed to cache user list", zap.Error(err))
			}
		}

		return users, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.User), nil
}

// GetByID retrieves a user by ID using the cache-aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to source", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	key := fmt.Sprintf("user:%d", id)
	result, err := r.do(ctx, key, func(ctx context.Context) (any, error) {
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		// Only one request hits the source
		u, err := r.source.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// do runs fn once per key for all concurrent callers. fn gets a context that
// keeps ctx values but not its cancellation, so one caller going away does
// not fail the others. Each caller still returns early on its own ctx.
func (r *CachedUserRepository) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := r.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return fn(flightCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
