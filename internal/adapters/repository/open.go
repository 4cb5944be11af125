package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-planner/internal/config"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// Store is a BlobStore that can report whether its backend is reachable.
type Store interface {
	domain.BlobStore
	Ping(ctx context.Context) error
}

// Backend bundles the selected store with the shared Redis client, which
// is nil when Redis is not configured.
type Backend struct {
	Store Store
	Redis *redis.Client

	closers []func() error
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// Open builds the store selected by cfg.Store.Driver. When Redis is
// configured and the durable store is SQL based, reads go through a Redis
// cache.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Backend{}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.Redis = rdb
		b.closers = append(b.closers, rdb.Close)
		logger.Info("redis connected", "host", cfg.Redis.Host, "db", cfg.Redis.DB)
	}

	var durable Store
	switch cfg.Store.Driver {
	case config.DriverMemory:
		durable = NewInMemoryBlobStore()

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		durable = NewSQLiteBlobStore(db)

	case config.DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		b.closers = append(b.closers, db.Close)

		pg := NewPostgresBlobStore(db, cfg.Store.BlobTable)
		if err := pg.EnsureTable(ctx); err != nil {
			b.Close()
			return nil, err
		}
		durable = pg

	case config.DriverRedis:
		if b.Redis == nil {
			return nil, errors.New("redis driver selected without a redis connection")
		}
		b.Store = NewRedisBlobStore(b.Redis, cfg.Redis.KeyPrefix)
		logger.Info("blob store ready", "driver", cfg.Store.Driver)
		return b, nil

	default:
		b.Close()
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if b.Redis != nil && cfg.Store.Driver != config.DriverMemory {
		b.Store = NewCachedBlobStore(durable, b.Redis, cfg.Redis.KeyPrefix, cfg.Store.CacheTTL, logger)
		logger.Info("blob store ready", "driver", cfg.Store.Driver, "cache", "redis")
		return b, nil
	}

	b.Store = durable
	logger.Info("blob store ready", "driver", cfg.Store.Driver)
	return b, nil
}
