package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	"user-directory/internal/adapter/gin/router"
	"user-directory/internal/adapter/repository/cached"
	"user-directory/internal/config"
	"user-directory/internal/infrastructure"
	"user-directory/internal/usecase/user"
	"user-directory/pkg/metrics"
	redisclient "user-directory/pkg/redis"
	"user-directory/pkg/telemetry"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Registry    *prometheus.Registry
	Metrics     *metrics.Collectors
	UserUC      user.Usecase
	Router      *gin.Engine

	shutdownTracing func(context.Context) error
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (_ *Container, err error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	defer func() {
		if err != nil {
			_ = c.Close(context.Background())
		}
	}()

	c.shutdownTracing, err = telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.New(c.Registry)

	// Only the database source needs a connection
	if cfg.Source.Driver == "database" {
		c.DB, err = infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	c.RedisClient, err = infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	source, err := infrastructure.NewUserSource(ctx, cfg, c.DB, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user source: %w", err)
	}
	repo := cached.NewCachedUserRepository(source, infrastructure.NewUserCache(cfg, c.RedisClient, l), l)

	c.UserUC = user.New(repo, l, c.Metrics)

	var rateLimiter *middleware.RateLimiter
	switch {
	case cfg.RateLimit.Enabled && c.RedisClient != nil:
		rateLimiter = middleware.NewRateLimiter(
			c.RedisClient.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
			},
			c.Metrics,
			l,
		)
	case cfg.RateLimit.Enabled:
		l.Warn("rate limiting requires Redis; requests will not be limited")
	}

	c.Router = router.SetupRouter(router.Dependencies{
		Pages:       handler.NewPageHandler(c.UserUC, l),
		Users:       handler.NewUserHandler(c.UserUC, l),
		RateLimiter: rateLimiter,
		Metrics:     c.Metrics,
		Gatherer:    c.Registry,
		Redis:       c.RedisClient,
		ServiceName: cfg.Logger.ServiceName,
		Log:         l,
	})

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.shutdownTracing != nil {
		if err := c.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
