package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultIOTimeout   = 3 * time.Second
)

// Config holds Redis connection configuration. Zero timeouts fall back to
// package defaults.
type Config struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int

	DialTimeout time.Duration
	IOTimeout   time.Duration
}

func (c Config) options() *redis.Options {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	io := c.IOTimeout
	if io <= 0 {
		io = defaultIOTimeout
	}

	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		MaxRetries:   c.MaxRetries,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConn,
		DialTimeout:  dial,
		ReadTimeout:  io,
		WriteTimeout: io,
		PoolTimeout:  io + time.Second,
	}
}

// Client is a go-redis client that knows how to report its own health.
type Client struct {
	*redis.Client
	log *zap.Logger
}

// NewClient opens a pool and pings it once. The ping is bounded by ctx and
// by the dial timeout, whichever ends first.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	opts := cfg.options()
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log = log.Named("redis").With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	log.Info("connected", zap.Int("pool_size", opts.PoolSize))

	return &Client{Client: rdb, log: log}, nil
}

// Healthy reports whether the server answers a ping. A nil client is
// never healthy.
func (c *Client) Healthy(ctx context.Context) bool {
	if c == nil || c.Client == nil {
		return false
	}
	if err := c.Ping(ctx).Err(); err != nil {
		c.log.Debug("health ping failed", zap.Error(err))
		return false
	}
	return true
}

// Close releases the pool. Closing a nil client is a no-op.
func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	c.log.Info("closing connection pool")
	return c.Client.Close()
}
