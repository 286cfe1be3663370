// Package app builds the product source and image delivery shared by the
// service binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/imaging"
	"github.com/example/ec-showcase/internal/products"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Products is the configured product source with its resources
type Products struct {
	Source products.Source
	// Cache is set when the Redis cache wraps the source
	Cache *products.CachedSource
	// Postgres is set when products come from the database
	Postgres *products.PostgresSource

	closers []func() error
}

// Close releases database and cache connections
func (p *Products) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenProducts builds the product source described by cfg: the built-in
// seed data or Postgres, optionally behind the Redis cache.
func OpenProducts(ctx context.Context, cfg *config.Config, store *catalog.Store, logger *zap.Logger) (*Products, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Products{}

	switch cfg.Products.Source {
	case config.SourcePostgres:
		db, err := products.Connect(cfg.Products.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		p.closers = append(p.closers, db.Close)

		pg := products.NewPostgresSource(db, store)
		if err := pg.EnsureSchema(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
		if cfg.Products.Seed {
			seed := products.SeedProducts(store)
			if err := pg.Upsert(ctx, seed); err != nil {
				p.Close()
				return nil, fmt.Errorf("failed to seed products: %w", err)
			}
			logger.Info("seeded products", zap.Int("count", len(seed)))
		}
		p.Postgres = pg
		p.Source = pg
		logger.Info("connected to postgres")
	default:
		p.Source = products.NewSeedSource(store)
	}

	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			PoolSize: 20,
		})
		p.closers = append(p.closers, rdb.Close)
		// an unreachable cache only costs latency; reads fall back to the source
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, reads will bypass the cache",
				zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		} else {
			logger.Info("connected to redis", zap.String("addr", cfg.Cache.RedisAddr))
		}
		p.Cache = products.NewCachedSource(p.Source, rdb, cfg.GetCacheTTL(), logger)
		p.Source = p.Cache
	}

	return p, nil
}

// NewDelivery returns the Cloudinary delivery when configured and serves
// references unchanged otherwise.
func NewDelivery(cfg config.ImagingConfig, logger *zap.Logger) (imaging.Delivery, error) {
	if cfg.CloudinaryURL == "" {
		return imaging.Passthrough{}, nil
	}
	d, err := imaging.NewCloudinaryDelivery(cfg.CloudinaryURL, cfg.Folder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return d, nil
}
