// Command snapshot copies the remote user directory into the configured
// database so the web server can run with SOURCE_DRIVER=database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"user-directory/internal/adapter/db/snapshot"
	"user-directory/internal/config"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("snapshot failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(infrastructure.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := infrastructure.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	return Run(ctx, cfg, l)
}

// Run fetches every user from the REST source and replaces the snapshot
// table with them. Cached entries are invalidated when Redis is enabled.
func Run(ctx context.Context, cfg *config.Config, l *zap.Logger) error {
	start := time.Now()

	client, err := infrastructure.NewRESTClient(cfg, l)
	if err != nil {
		return err
	}

	users, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = infrastructure.CloseDatabase(db) }()

	repo := snapshot.NewUserRepo(db, l)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	res, err := repo.ReplaceAll(ctx, users)
	if err != nil {
		return err
	}

	invalidateCache(ctx, cfg, l, users, res.Pruned)

	l.Info("snapshot complete",
		zap.Int64("stored", res.Stored),
		zap.Int("pruned", len(res.Pruned)),
		zap.String("driver", cfg.DB.Driver),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// invalidateCache drops the cached list plus every stored and pruned record.
func invalidateCache(ctx context.Context, cfg *config.Config, l *zap.Logger, users []domain.User, pruned []int64) {
	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		l.Warn("skipping cache invalidation", zap.Error(err))
		return
	}
	defer func() { _ = rdb.Close() }()

	userCache := infrastructure.NewUserCache(cfg, rdb, l)
	if userCache == nil {
		return
	}

	ids := make([]int64, 0, len(users)+len(pruned))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	ids = append(ids, pruned...)

	if err := userCache.Invalidate(ctx, ids...); err != nil {
		l.Warn("failed to invalidate cached users", zap.Error(err))
	}
}
