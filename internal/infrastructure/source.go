package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory/internal/adapter/db/snapshot"
	"user-directory/internal/adapter/source/rest"
	"user-directory/internal/config"
	"user-directory/internal/usecase/user"
)

// NewRESTClient builds the client for the remote user API.
func NewRESTClient(cfg *config.Config, l *zap.Logger) (*rest.UserClient, error) {
	client, err := rest.NewUserClient(cfg.Source.BaseURL, time.Duration(cfg.Source.TimeoutSeconds)*time.Second, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create user api client: %w", err)
	}
	return client, nil
}

// NewUserSource returns the user record source selected by SOURCE_DRIVER.
// db is only used by the database driver and may be nil otherwise.
func NewUserSource(ctx context.Context, cfg *config.Config, db *gorm.DB, l *zap.Logger) (user.Repository, error) {
	switch cfg.Source.Driver {
	case "rest":
		return NewRESTClient(cfg, l)
	case "database":
		if db == nil {
			return nil, fmt.Errorf("database source requires a database connection")
		}
		repo := snapshot.NewUserRepo(db, l)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported source driver %q", cfg.Source.Driver)
	}
}
