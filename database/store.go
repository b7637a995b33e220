package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slotbook/config"
	availabilityRepo "slotbook/database/repository/availability"
	"slotbook/utils"
)

// Store is an opened availability store plus the health checks and cleanup
// for whatever backend it sits on.
type Store struct {
	Repo    availabilityRepo.AvailabilityRepository
	Checks  map[string]utils.HealthCheck
	closers []func()
}

// Close releases backend connections.
func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStore builds the repository selected by cfg.StoreDriver, prepares its
// schema, and wraps it with the Redis config cache when REDIS_ADDR is set.
func OpenStore(ctx context.Context, cfg config.Config) (*Store, error) {
	logger := utils.GetLogger()
	store := &Store{Checks: map[string]utils.HealthCheck{}}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		store.Repo = availabilityRepo.NewMemoryRepo()

	case config.DriverMongo:
		if err := InitDB(); err != nil {
			return nil, err
		}
		client := MongoClient
		store.closers = append(store.closers, func() { _ = client.Disconnect(context.Background()) })
		repo := availabilityRepo.NewMongoRepo(client.Database(cfg.DatabaseName))
		if err := repo.EnsureIndexes(ctx); err != nil {
			store.Close()
			return nil, err
		}
		store.Repo = repo
		store.Checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	case config.DriverPostgres, config.DriverSQLite:
		dsn := cfg.PostgresDSN
		if cfg.StoreDriver == config.DriverSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := OpenSQL(cfg.StoreDriver, dsn)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		store.closers = append(store.closers, func() { _ = sqlDB.Close() })
		repo := availabilityRepo.NewGormRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		store.Repo = repo
		store.Checks[cfg.StoreDriver] = sqlDB.PingContext

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		if err := utils.InitCache(); err != nil {
			logger.Warn("Availability cache disabled", zap.Error(err))
		} else {
			client := utils.GetCacheClient()
			store.closers = append(store.closers, func() { _ = client.Close() })
			store.Repo = availabilityRepo.NewCachedRepo(store.Repo, client, cfg.ConfigCacheTTL)
			store.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	logger.Info("Availability store ready", zap.String("driver", cfg.StoreDriver), zap.Bool("cached", cfg.RedisAddr != "" && utils.GetCacheClient() != nil))
	return store, nil
}
