package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/persistence"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/repository/memstore"
)

// OpenRepositories connects the configured storage driver. The returned
// close func releases the connection pool, if any.
func OpenRepositories(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repository.Repositories, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		repos, err := memstore.NewRepositories()
		if err != nil {
			return repository.Repositories{}, nil, fmt.Errorf("create memory store: %w", err)
		}
		logger.Warn("using in-memory storage, data is lost on restart")
		return repos, func() {}, nil

	case config.DriverPostgres:
		pool, err := persistence.NewPostgres(ctx, cfg, logger)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if cfg.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.MigrationsDir, logger); err != nil {
				pool.Close()
				return repository.Repositories{}, nil, err
			}
		}
		return repository.NewPostgres(pool), pool.Close, nil
	}
	return repository.Repositories{}, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
